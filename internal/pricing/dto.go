package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SkillPriceDTO is one skill's fee row inside a language pair group.
type SkillPriceDTO struct {
	ID           *uuid.UUID      `json:"id,omitempty"`
	SkillID      uuid.UUID       `json:"skill_id" validate:"required"`
	SkillName    string          `json:"skill_name,omitempty"`
	CharacterFee decimal.Decimal `json:"character_fee"`
	WordFee      decimal.Decimal `json:"word_fee"`
	PageFee      decimal.Decimal `json:"page_fee"`
	MinuteFee    decimal.Decimal `json:"minute_fee"`
	HourFee      decimal.Decimal `json:"hour_fee"`
	MinimalFee   decimal.Decimal `json:"minimal_fee"`
	Selected     bool            `json:"selected"`
}

// PriceGroupDTO is the form representation of one language pair. A group
// keyed "new" may carry several destination languages.
type PriceGroupDTO struct {
	Key        string          `json:"key" validate:"required"`
	SrcLangID  uuid.UUID       `json:"src_lang_classifier_value_id"`
	DstLangIDs []uuid.UUID     `json:"dst_lang_classifier_value_ids" validate:"min=1"`
	Prices     []SkillPriceDTO `json:"prices" validate:"dive"`
}

// PriceListResponse is the vendor's full editable price list.
type PriceListResponse struct {
	VendorID uuid.UUID       `json:"vendor_id"`
	Groups   []PriceGroupDTO `json:"groups"`
}

// SubmitPriceListRequest carries every edited group of the form.
type SubmitPriceListRequest struct {
	Groups []PriceGroupDTO `json:"groups" validate:"required,min=1,dive"`
}

// SubmitPriceListResponse reports what the submission changed and any
// per-field problems, keyed by form path.
type SubmitPriceListResponse struct {
	Changed bool                `json:"changed"`
	Applied map[string]int      `json:"applied,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewPriceGroupDTO renders a domain group for the form.
func NewPriceGroupDTO(group LanguagePairGroup, skillNames map[uuid.UUID]string) PriceGroupDTO {
	dto := PriceGroupDTO{
		Key:        group.Key,
		SrcLangID:  group.SrcLangID,
		DstLangIDs: append([]uuid.UUID{}, group.DstLangIDs...),
		Prices:     make([]SkillPriceDTO, 0, len(group.Entries)),
	}
	for _, entry := range group.Entries {
		row := SkillPriceDTO{
			SkillID:      entry.SkillID,
			SkillName:    skillNames[entry.SkillID],
			CharacterFee: entry.Fees.Character,
			WordFee:      entry.Fees.Word,
			PageFee:      entry.Fees.Page,
			MinuteFee:    entry.Fees.Minute,
			HourFee:      entry.Fees.Hour,
			MinimalFee:   entry.Fees.Minimal,
			Selected:     entry.Selected,
		}
		if id, ok := entry.Ref.ID(); ok {
			row.ID = &id
		}
		dto.Prices = append(dto.Prices, row)
	}
	return dto
}

// ToGroup converts the submitted form group back into the domain shape.
func (d PriceGroupDTO) ToGroup(vendorID uuid.UUID) LanguagePairGroup {
	group := LanguagePairGroup{
		Key:        d.Key,
		SrcLangID:  d.SrcLangID,
		DstLangIDs: append([]uuid.UUID{}, d.DstLangIDs...),
		Entries:    make([]SkillPriceEntry, 0, len(d.Prices)),
	}
	dstLangID := uuid.UUID{}
	if len(d.DstLangIDs) == 1 {
		dstLangID = d.DstLangIDs[0]
	}
	for _, row := range d.Prices {
		ref := DraftRef()
		if row.ID != nil {
			ref = PersistedRef(*row.ID)
		}
		group.Entries = append(group.Entries, SkillPriceEntry{
			Ref:       ref,
			GroupKey:  d.Key,
			SkillID:   row.SkillID,
			VendorID:  vendorID,
			SrcLangID: d.SrcLangID,
			DstLangID: dstLangID,
			Fees: FeeSet{
				Character: row.CharacterFee,
				Word:      row.WordFee,
				Page:      row.PageFee,
				Minute:    row.MinuteFee,
				Hour:      row.HourFee,
				Minimal:   row.MinimalFee,
			},
			Selected: row.Selected,
		})
	}
	return group
}
