package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

// Repository is the server side of the price-mutation API: it applies one
// reconciliation operation per transaction and lists a vendor's records.
type Repository interface {
	MutationAPI
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.PriceRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed price record repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.PriceRecord, error) {
	var records []models.PriceRecord
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("src_lang_classifier_value_id, dst_lang_classifier_value_id, skill_id").
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list price records")
	}
	return records, nil
}

// Apply validates and persists one batch. Validation failures carry
// "data.<index>.<field>" keyed details, the wire contract MapError consumes.
func (r *repository) Apply(ctx context.Context, op Operation) error {
	if fieldErrs := validateOperation(op); len(fieldErrs) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s batch", op.State)).
			WithDetails(map[string]any{"errors": fieldErrs})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch op.State {
		case StateNew:
			records := make([]models.PriceRecord, 0, len(op.Entries))
			for _, entry := range op.Entries {
				record := entryToRecord(entry)
				if record.ID == uuid.Nil {
					record.ID = uuid.New()
				}
				records = append(records, record)
			}
			if err := tx.Create(&records).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert price records")
			}

		case StateUpdated:
			for _, entry := range op.Entries {
				id, _ := entry.Ref.ID()
				record := entryToRecord(entry)
				res := tx.Model(&models.PriceRecord{}).Where("id = ?", id).Updates(map[string]any{
					"character_fee": record.CharacterFee,
					"word_fee":      record.WordFee,
					"page_fee":      record.PageFee,
					"minute_fee":    record.MinuteFee,
					"hour_fee":      record.HourFee,
					"minimal_fee":   record.MinimalFee,
				})
				if res.Error != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "update price record")
				}
				if res.RowsAffected == 0 {
					return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("price record %s not found", id))
				}
			}

		case StateDeleted:
			ids := make([]uuid.UUID, 0, len(op.Entries))
			for _, entry := range op.Entries {
				id, _ := entry.Ref.ID()
				ids = append(ids, id)
			}
			if err := tx.Where("id IN ?", ids).Delete(&models.PriceRecord{}).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price records")
			}

		default:
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("state %s is not submittable", op.State))
		}
		return nil
	})
}

// validateOperation checks each entry and keys problems by batch index so
// the caller can re-target them onto the form.
func validateOperation(op Operation) map[string][]string {
	fieldErrs := map[string][]string{}
	add := func(index int, field, message string) {
		key := fmt.Sprintf("data.%d.%s", index, field)
		fieldErrs[key] = append(fieldErrs[key], message)
	}

	for i, entry := range op.Entries {
		if entry.VendorID == uuid.Nil {
			add(i, "vendor_id", "is required")
		}
		if entry.SkillID == uuid.Nil {
			add(i, "skill_id", "is required")
		}
		if entry.SrcLangID == uuid.Nil {
			add(i, FieldSrcLang, "is required")
		}
		if entry.DstLangID == uuid.Nil {
			add(i, FieldDstLang, "is required")
		}
		if entry.SrcLangID != uuid.Nil && entry.SrcLangID == entry.DstLangID {
			add(i, FieldDstLang, "must differ from source language")
		}

		for field, fee := range map[string]interface{ IsNegative() bool }{
			"character_fee": entry.Fees.Character,
			"word_fee":      entry.Fees.Word,
			"page_fee":      entry.Fees.Page,
			"minute_fee":    entry.Fees.Minute,
			"hour_fee":      entry.Fees.Hour,
			"minimal_fee":   entry.Fees.Minimal,
		} {
			if fee.IsNegative() {
				add(i, field, "must not be negative")
			}
		}

		switch op.State {
		case StateNew:
			if entry.Ref.Persisted() {
				add(i, "id", "must be absent for new records")
			}
		case StateUpdated, StateDeleted:
			if !entry.Ref.Persisted() {
				add(i, "id", "is required")
			}
		}
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

func entryToRecord(entry SkillPriceEntry) models.PriceRecord {
	record := models.PriceRecord{
		VendorID:                 entry.VendorID,
		SkillID:                  entry.SkillID,
		SrcLangClassifierValueID: entry.SrcLangID,
		DstLangClassifierValueID: entry.DstLangID,
		CharacterFee:             entry.Fees.Character,
		WordFee:                  entry.Fees.Word,
		PageFee:                  entry.Fees.Page,
		MinuteFee:                entry.Fees.Minute,
		HourFee:                  entry.Fees.Hour,
		MinimalFee:               entry.Fees.Minimal,
	}
	if id, ok := entry.Ref.ID(); ok {
		record.ID = id
	}
	return record
}

func recordToEntry(record models.PriceRecord, groupKey string) SkillPriceEntry {
	return SkillPriceEntry{
		Ref:       PersistedRef(record.ID),
		GroupKey:  groupKey,
		SkillID:   record.SkillID,
		VendorID:  record.VendorID,
		SrcLangID: record.SrcLangClassifierValueID,
		DstLangID: record.DstLangClassifierValueID,
		Fees: FeeSet{
			Character: record.CharacterFee,
			Word:      record.WordFee,
			Page:      record.PageFee,
			Minute:    record.MinuteFee,
			Hour:      record.HourFee,
			Minimal:   record.MinimalFee,
		},
		Selected: true,
	}
}
