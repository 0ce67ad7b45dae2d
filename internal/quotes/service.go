package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolkflow/tolkflow-backend/pkg/enums"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
	"github.com/tolkflow/tolkflow-backend/pkg/metrics"
)

// DiscountProvider resolves the discount schedule that applies to a vendor.
// Vendors without an override fall back to the institutional default.
type DiscountProvider interface {
	ScheduleForVendor(ctx context.Context, vendorID uuid.UUID) (map[enums.MatchTier]decimal.Decimal, error)
}

// QuoteRequest is the wire payload for a quote calculation. Breakdown and
// discounts are keyed by match-tier name; values accept both JSON numbers
// and decimal strings. Inline discounts take precedence over the vendor's
// stored schedule.
type QuoteRequest struct {
	UnitFee   decimal.Decimal            `json:"unit_fee"`
	Breakdown map[string]decimal.Decimal `json:"breakdown" validate:"required"`
	Discounts map[string]decimal.Decimal `json:"discounts,omitempty"`
}

// Service computes vendor quotes from CAT analysis breakdowns.
type Service interface {
	QuoteForVendor(ctx context.Context, vendorID uuid.UUID, req QuoteRequest) (*PriceQuote, error)
}

type service struct {
	discounts DiscountProvider
	metrics   *metrics.PricingMetrics
	logg      *logger.Logger
}

func NewService(discounts DiscountProvider, m *metrics.PricingMetrics, logg *logger.Logger) (Service, error) {
	if discounts == nil {
		return nil, errors.New("quotes: discount provider is required")
	}
	return &service{discounts: discounts, metrics: m, logg: logg}, nil
}

func (s *service) QuoteForVendor(ctx context.Context, vendorID uuid.UUID, req QuoteRequest) (*PriceQuote, error) {
	if req.UnitFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit_fee must not be negative")
	}

	breakdown, err := parseTierMap(req.Breakdown, "breakdown", false)
	if err != nil {
		return nil, err
	}

	var schedule DiscountSchedule
	if len(req.Discounts) > 0 {
		parsed, err := parseTierMap(req.Discounts, "discounts", true)
		if err != nil {
			return nil, err
		}
		schedule = DiscountSchedule(parsed)
	} else {
		stored, err := s.discounts.ScheduleForVendor(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		schedule = stored
	}

	quote := ComputeQuote(req.UnitFee, breakdown, schedule)
	s.metrics.IncQuote()
	if s.logg != nil {
		fields := map[string]any{
			"effective_quantity": quote.EffectiveQuantity.String(),
			"total_price":        quote.TotalPrice.String(),
		}
		s.logg.Info(s.logg.WithFields(s.logg.WithVendorID(ctx, vendorID.String()), fields), "quote computed")
	}
	return &quote, nil
}

// parseTierMap validates tier names against the fixed vocabulary and value
// ranges. Discount percentages must stay within [0,100]; unit counts only
// need to be non-negative.
func parseTierMap(raw map[string]decimal.Decimal, field string, isPercentage bool) (map[enums.MatchTier]decimal.Decimal, error) {
	out := make(map[enums.MatchTier]decimal.Decimal, len(raw))
	for name, value := range raw {
		tier, err := enums.ParseMatchTier(name)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s.%s: unknown match tier", field, name))
		}
		if value.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s.%s: must not be negative", field, name))
		}
		if isPercentage && value.GreaterThan(hundred) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s.%s: must not exceed 100", field, name))
		}
		out[tier] = value
	}
	return out, nil
}
