package vendors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// discountCopier seeds a vendor's discount table from the institutional
// default at creation time.
type discountCopier interface {
	CopyDefaultToVendor(ctx context.Context, vendorID uuid.UUID) error
}

// VendorDTO is the vendor payload returned to clients.
type VendorDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Specialties []string  `json:"specialties,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateVendorRequest carries the fields needed to register a vendor.
type CreateVendorRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Email       *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string  `json:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateVendorRequest) (*VendorDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	List(ctx context.Context) ([]VendorDTO, error)
}

type service struct {
	repo      Repository
	discounts discountCopier
	logg      *logger.Logger
}

func NewService(repo Repository, discounts discountCopier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("vendors: repository is required")
	}
	if discounts == nil {
		return nil, errors.New("vendors: discount copier is required")
	}
	return &service{repo: repo, discounts: discounts, logg: logg}, nil
}

// Create registers the vendor and copies the default discount table onto
// it. Vendors missing the copy still quote correctly because the schedule
// lookup falls back to the default table.
func (s *service) Create(ctx context.Context, req CreateVendorRequest) (*VendorDTO, error) {
	vendor := &models.Vendor{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Specialties: req.Specialties,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	if err := s.discounts.CopyDefaultToVendor(ctx, vendor.ID); err != nil {
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
			return nil, err
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithVendorID(ctx, vendor.ID.String()), "no default discount table to copy")
		}
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithVendorID(ctx, vendor.ID.String()), "vendor created")
	}
	return newVendorDTO(vendor), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newVendorDTO(vendor), nil
}

func (s *service) List(ctx context.Context) ([]VendorDTO, error) {
	vendors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VendorDTO, 0, len(vendors))
	for i := range vendors {
		out = append(out, *newVendorDTO(&vendors[i]))
	}
	return out, nil
}

func newVendorDTO(vendor *models.Vendor) *VendorDTO {
	return &VendorDTO{
		ID:          vendor.ID,
		Name:        vendor.Name,
		Email:       vendor.Email,
		Phone:       vendor.Phone,
		Specialties: append([]string{}, vendor.Specialties...),
		IsActive:    vendor.IsActive,
		CreatedAt:   vendor.CreatedAt,
	}
}
