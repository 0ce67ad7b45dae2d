package quotes

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tolkflow/tolkflow-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeQuoteTieredScenario(t *testing.T) {
	quote := ComputeQuote(
		dec("0.10"),
		VolumeBreakdown{
			enums.MatchTier101:   dec("1000"),
			enums.MatchTier0to49: dec("500"),
		},
		DiscountSchedule{
			enums.MatchTier101:   dec("75"),
			enums.MatchTier0to49: dec("0"),
		},
	)

	assert.True(t, quote.EffectiveQuantity.Equal(dec("750")), "got %s", quote.EffectiveQuantity)
	assert.True(t, quote.TotalPrice.Equal(dec("75.00")), "got %s", quote.TotalPrice)
}

func TestComputeQuoteZeroBreakdown(t *testing.T) {
	quote := ComputeQuote(dec("0.10"), VolumeBreakdown{}, DiscountSchedule{})
	assert.True(t, quote.EffectiveQuantity.IsZero())
	assert.True(t, quote.TotalPrice.IsZero())
}

func TestComputeQuoteZeroFee(t *testing.T) {
	quote := ComputeQuote(decimal.Zero, VolumeBreakdown{enums.MatchTier100: dec("1234")}, DiscountSchedule{})
	assert.True(t, quote.TotalPrice.IsZero())
	assert.True(t, quote.EffectiveQuantity.Equal(dec("1234")))
}

func TestComputeQuoteFullDiscountZeroesQuantity(t *testing.T) {
	breakdown := VolumeBreakdown{}
	discounts := DiscountSchedule{}
	for _, tier := range enums.AllMatchTiers() {
		breakdown[tier] = dec("100")
		discounts[tier] = dec("100")
	}

	quote := ComputeQuote(dec("0.50"), breakdown, discounts)
	assert.True(t, quote.EffectiveQuantity.IsZero())
	assert.True(t, quote.TotalPrice.IsZero())
}

func TestComputeQuoteNoDiscountPassesThrough(t *testing.T) {
	breakdown := VolumeBreakdown{}
	total := decimal.Zero
	for i, tier := range enums.AllMatchTiers() {
		count := decimal.NewFromInt(int64((i + 1) * 10))
		breakdown[tier] = count
		total = total.Add(count)
	}

	quote := ComputeQuote(dec("1"), breakdown, DiscountSchedule{})
	assert.True(t, quote.EffectiveQuantity.Equal(total))
}

func TestComputeQuoteClampsExcessiveDiscount(t *testing.T) {
	quote := ComputeQuote(
		dec("0.10"),
		VolumeBreakdown{enums.MatchTier100: dec("1000")},
		DiscountSchedule{enums.MatchTier100: dec("150")},
	)
	assert.True(t, quote.EffectiveQuantity.IsZero(), "weight below zero clamps to zero")
	assert.False(t, quote.TotalPrice.IsNegative())
}

func TestComputeQuoteMissingDiscountMeansFullPrice(t *testing.T) {
	quote := ComputeQuote(
		dec("2"),
		VolumeBreakdown{enums.MatchTierRepetitions: dec("50")},
		DiscountSchedule{},
	)
	assert.True(t, quote.EffectiveQuantity.Equal(dec("50")))
	assert.True(t, quote.TotalPrice.Equal(dec("100.00")))
}

func TestComputeQuoteRoundsToCents(t *testing.T) {
	quote := ComputeQuote(
		dec("0.0333"),
		VolumeBreakdown{enums.MatchTier100: dec("100")},
		DiscountSchedule{},
	)
	assert.True(t, quote.TotalPrice.Equal(dec("3.33")), "got %s", quote.TotalPrice)
}
