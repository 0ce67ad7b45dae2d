package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tolkflow/tolkflow-backend/pkg/enums"
)

// DiscountTable stores the per-tier volume discount percentages. A row with
// a nil VendorID is the institution-wide default; vendor rows start as a
// copy of the default and are mutated independently afterwards.
type DiscountTable struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID    *uuid.UUID      `gorm:"column:vendor_id;type:uuid;uniqueIndex"`
	Repetitions decimal.Decimal `gorm:"column:repetitions;type:numeric(5,2);not null"`
	Match101    decimal.Decimal `gorm:"column:match_101;type:numeric(5,2);not null"`
	Match100    decimal.Decimal `gorm:"column:match_100;type:numeric(5,2);not null"`
	Match95to99 decimal.Decimal `gorm:"column:match_95_99;type:numeric(5,2);not null"`
	Match85to94 decimal.Decimal `gorm:"column:match_85_94;type:numeric(5,2);not null"`
	Match75to84 decimal.Decimal `gorm:"column:match_75_84;type:numeric(5,2);not null"`
	Match50to74 decimal.Decimal `gorm:"column:match_50_74;type:numeric(5,2);not null"`
	Match0to49  decimal.Decimal `gorm:"column:match_0_49;type:numeric(5,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Tiers flattens the row into the tier → percentage map consumed by the
// quote calculator.
func (d DiscountTable) Tiers() map[enums.MatchTier]decimal.Decimal {
	return map[enums.MatchTier]decimal.Decimal{
		enums.MatchTierRepetitions: d.Repetitions,
		enums.MatchTier101:         d.Match101,
		enums.MatchTier100:         d.Match100,
		enums.MatchTier95to99:      d.Match95to99,
		enums.MatchTier85to94:      d.Match85to94,
		enums.MatchTier75to84:      d.Match75to84,
		enums.MatchTier50to74:      d.Match50to74,
		enums.MatchTier0to49:       d.Match0to49,
	}
}

// ApplyTiers writes the provided percentages onto the row. Missing tiers
// keep their current value.
func (d *DiscountTable) ApplyTiers(tiers map[enums.MatchTier]decimal.Decimal) {
	for tier, pct := range tiers {
		switch tier {
		case enums.MatchTierRepetitions:
			d.Repetitions = pct
		case enums.MatchTier101:
			d.Match101 = pct
		case enums.MatchTier100:
			d.Match100 = pct
		case enums.MatchTier95to99:
			d.Match95to99 = pct
		case enums.MatchTier85to94:
			d.Match85to94 = pct
		case enums.MatchTier75to84:
			d.Match75to84 = pct
		case enums.MatchTier50to74:
			d.Match50to74 = pct
		case enums.MatchTier0to49:
			d.Match0to49 = pct
		}
	}
}

// CopyForVendor clones the table for the given vendor. The copy gets a fresh
// primary key on insert and no link back to the source row.
func (d DiscountTable) CopyForVendor(vendorID uuid.UUID) DiscountTable {
	clone := d
	clone.ID = uuid.Nil
	clone.VendorID = &vendorID
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	return clone
}
