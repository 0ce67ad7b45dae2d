package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/tolkflow/tolkflow-backend/pkg/enums"
)

// VolumeBreakdown maps each match tier to its raw translatable unit count.
// Tiers absent from the map count as zero.
type VolumeBreakdown map[enums.MatchTier]decimal.Decimal

// DiscountSchedule maps each match tier to the discount percentage applied
// to units in that tier. A missing tier means 0% discount, full price.
type DiscountSchedule map[enums.MatchTier]decimal.Decimal

// PriceQuote is the derived result of one calculation. It is never
// persisted; callers recompute whenever any input changes.
type PriceQuote struct {
	UnitFee           decimal.Decimal  `json:"unit_fee"`
	Breakdown         VolumeBreakdown  `json:"breakdown"`
	Discounts         DiscountSchedule `json:"discounts"`
	EffectiveQuantity decimal.Decimal  `json:"effective_quantity"`
	TotalPrice        decimal.Decimal  `json:"total_price"`
}

var hundred = decimal.NewFromInt(100)

// ComputeQuote converts a tiered unit-count breakdown into a billable
// quantity and total price. Each tier contributes raw * (100 - discount)/100
// units; negative weights clamp to zero so an out-of-range discount can
// never produce a negative quantity. The total is rounded to 2 decimal
// places, half away from zero.
//
// The function is pure. Range validation of the inputs belongs to the edge
// that collected them.
func ComputeQuote(unitFee decimal.Decimal, breakdown VolumeBreakdown, discounts DiscountSchedule) PriceQuote {
	quantity := decimal.Zero
	for _, tier := range enums.AllMatchTiers() {
		raw := breakdown[tier]
		if raw.IsZero() {
			continue
		}
		weight := hundred.Sub(discounts[tier]).Div(hundred)
		if weight.IsNegative() {
			weight = decimal.Zero
		}
		quantity = quantity.Add(raw.Mul(weight))
	}

	return PriceQuote{
		UnitFee:           unitFee,
		Breakdown:         breakdown,
		Discounts:         discounts,
		EffectiveQuantity: quantity,
		TotalPrice:        quantity.Mul(unitFee).Round(2),
	}
}
