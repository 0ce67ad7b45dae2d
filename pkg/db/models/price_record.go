package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRecord stores one vendor's fee set for a (skill, language pair)
// combination. Language ids are classifier values owned by an external
// classifier service; locally they are opaque uuids.
type PriceRecord struct {
	ID                       uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID                 uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_price_vendor_skill_pair,priority:1"`
	SkillID                  uuid.UUID       `gorm:"column:skill_id;type:uuid;not null;uniqueIndex:idx_price_vendor_skill_pair,priority:2"`
	SrcLangClassifierValueID uuid.UUID       `gorm:"column:src_lang_classifier_value_id;type:uuid;not null;uniqueIndex:idx_price_vendor_skill_pair,priority:3"`
	DstLangClassifierValueID uuid.UUID       `gorm:"column:dst_lang_classifier_value_id;type:uuid;not null;uniqueIndex:idx_price_vendor_skill_pair,priority:4"`
	CharacterFee             decimal.Decimal `gorm:"column:character_fee;type:numeric(12,4);not null"`
	WordFee                  decimal.Decimal `gorm:"column:word_fee;type:numeric(12,4);not null"`
	PageFee                  decimal.Decimal `gorm:"column:page_fee;type:numeric(12,2);not null"`
	MinuteFee                decimal.Decimal `gorm:"column:minute_fee;type:numeric(12,2);not null"`
	HourFee                  decimal.Decimal `gorm:"column:hour_fee;type:numeric(12,2);not null"`
	MinimalFee               decimal.Decimal `gorm:"column:minimal_fee;type:numeric(12,2);not null"`
	CreatedAt                time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
