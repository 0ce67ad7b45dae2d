package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolkflow/tolkflow-backend/pkg/db"
	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	"github.com/tolkflow/tolkflow-backend/pkg/enums"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// DiscountTableDTO is the wire shape of one table: tier name → percentage.
type DiscountTableDTO struct {
	VendorID *uuid.UUID                 `json:"vendor_id,omitempty"`
	Tiers    map[string]decimal.Decimal `json:"tiers"`
}

// UpdateDiscountsRequest carries the tiers to overwrite. Missing tiers keep
// their stored value.
type UpdateDiscountsRequest struct {
	Tiers map[string]decimal.Decimal `json:"tiers" validate:"required,min=1"`
}

// Service manages the institutional default table and per-vendor overrides.
type Service interface {
	GetDefault(ctx context.Context) (*DiscountTableDTO, error)
	UpdateDefault(ctx context.Context, req UpdateDiscountsRequest) (*DiscountTableDTO, error)
	GetForVendor(ctx context.Context, vendorID uuid.UUID) (*DiscountTableDTO, error)
	UpdateForVendor(ctx context.Context, vendorID uuid.UUID, req UpdateDiscountsRequest) (*DiscountTableDTO, error)
	CopyDefaultToVendor(ctx context.Context, vendorID uuid.UUID) error
	ScheduleForVendor(ctx context.Context, vendorID uuid.UUID) (map[enums.MatchTier]decimal.Decimal, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("discounts: repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) GetDefault(ctx context.Context) (*DiscountTableDTO, error) {
	table, err := s.repo.Default(ctx)
	if err != nil {
		return nil, err
	}
	return newTableDTO(table), nil
}

func (s *service) UpdateDefault(ctx context.Context, req UpdateDiscountsRequest) (*DiscountTableDTO, error) {
	tiers, err := parsePercentages(req.Tiers)
	if err != nil {
		return nil, err
	}
	table, err := s.repo.Default(ctx)
	if err != nil {
		return nil, err
	}
	table.ApplyTiers(tiers)
	if err := s.repo.Save(ctx, table); err != nil {
		return nil, err
	}
	return newTableDTO(table), nil
}

// GetForVendor returns the vendor's override, falling back to the default
// table when the vendor has none yet.
func (s *service) GetForVendor(ctx context.Context, vendorID uuid.UUID) (*DiscountTableDTO, error) {
	table, err := s.repo.ForVendor(ctx, vendorID)
	if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeNotFound {
		table, err = s.repo.Default(ctx)
	}
	if err != nil {
		return nil, err
	}
	return newTableDTO(table), nil
}

func (s *service) UpdateForVendor(ctx context.Context, vendorID uuid.UUID, req UpdateDiscountsRequest) (*DiscountTableDTO, error) {
	tiers, err := parsePercentages(req.Tiers)
	if err != nil {
		return nil, err
	}
	table, err := s.repo.ForVendor(ctx, vendorID)
	if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeNotFound {
		// Editing a vendor without an override materializes one first.
		if err := s.CopyDefaultToVendor(ctx, vendorID); err != nil {
			return nil, err
		}
		table, err = s.repo.ForVendor(ctx, vendorID)
	}
	if err != nil {
		return nil, err
	}
	table.ApplyTiers(tiers)
	if err := s.repo.Save(ctx, table); err != nil {
		return nil, err
	}
	return newTableDTO(table), nil
}

// CopyDefaultToVendor clones the institutional default once. The copy has
// no link back; later default edits never reach existing vendors.
func (s *service) CopyDefaultToVendor(ctx context.Context, vendorID uuid.UUID) error {
	source, err := s.repo.Default(ctx)
	if err != nil {
		return err
	}
	clone := source.CopyForVendor(vendorID)
	if err := s.repo.Create(ctx, &clone); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "vendor discount table already exists")
		}
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithVendorID(ctx, vendorID.String()), "discount table copied from default")
	}
	return nil
}

func (s *service) ScheduleForVendor(ctx context.Context, vendorID uuid.UUID) (map[enums.MatchTier]decimal.Decimal, error) {
	table, err := s.repo.ForVendor(ctx, vendorID)
	if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeNotFound {
		table, err = s.repo.Default(ctx)
	}
	if err != nil {
		return nil, err
	}
	return table.Tiers(), nil
}

func newTableDTO(table *models.DiscountTable) *DiscountTableDTO {
	tiers := table.Tiers()
	out := make(map[string]decimal.Decimal, len(tiers))
	for tier, pct := range tiers {
		out[string(tier)] = pct
	}
	return &DiscountTableDTO{VendorID: table.VendorID, Tiers: out}
}

var hundred = decimal.NewFromInt(100)

func parsePercentages(raw map[string]decimal.Decimal) (map[enums.MatchTier]decimal.Decimal, error) {
	out := make(map[enums.MatchTier]decimal.Decimal, len(raw))
	for name, pct := range raw {
		tier, err := enums.ParseMatchTier(name)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tiers.%s: unknown match tier", name))
		}
		if pct.IsNegative() || pct.GreaterThan(hundred) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("tiers.%s: must be between 0 and 100", name))
		}
		out[tier] = pct
	}
	return out, nil
}
