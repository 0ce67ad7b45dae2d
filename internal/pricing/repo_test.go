package pricing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS price_records (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  skill_id TEXT NOT NULL,
  src_lang_classifier_value_id TEXT NOT NULL,
  dst_lang_classifier_value_id TEXT NOT NULL,
  character_fee NUMERIC NOT NULL,
  word_fee NUMERIC NOT NULL,
  page_fee NUMERIC NOT NULL,
  minute_fee NUMERIC NOT NULL,
  hour_fee NUMERIC NOT NULL,
  minimal_fee NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (vendor_id, skill_id, src_lang_classifier_value_id, dst_lang_classifier_value_id)
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func mustInsertRecord(t *testing.T, conn *gorm.DB, vendorID uuid.UUID, word string) models.PriceRecord {
	t.Helper()

	record := models.PriceRecord{
		ID:                       uuid.New(),
		VendorID:                 vendorID,
		SkillID:                  uuid.New(),
		SrcLangClassifierValueID: uuid.New(),
		DstLangClassifierValueID: uuid.New(),
		WordFee:                  decimal.RequireFromString(word),
	}
	require.NoError(t, conn.Create(&record).Error)
	return record
}

func TestRepositoryListByVendor(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	vendorID := uuid.New()
	mustInsertRecord(t, conn, vendorID, "0.10")
	mustInsertRecord(t, conn, vendorID, "0.20")
	mustInsertRecord(t, conn, uuid.New(), "0.99")

	records, err := repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, vendorID, record.VendorID)
	}
}

func TestRepositoryApplyNewInsertsBatch(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	vendorID := uuid.New()
	op := Operation{
		State: StateNew,
		Entries: []SkillPriceEntry{
			{
				Ref:       DraftRef(),
				VendorID:  vendorID,
				SkillID:   uuid.New(),
				SrcLangID: uuid.New(),
				DstLangID: uuid.New(),
				Fees:      FeeSet{Word: decimal.RequireFromString("0.15")},
				Selected:  true,
			},
			{
				Ref:       DraftRef(),
				VendorID:  vendorID,
				SkillID:   uuid.New(),
				SrcLangID: uuid.New(),
				DstLangID: uuid.New(),
				Fees:      FeeSet{Word: decimal.RequireFromString("0.25")},
				Selected:  true,
			},
		},
	}

	require.NoError(t, repo.Apply(ctx, op))

	records, err := repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.NotEqual(t, uuid.Nil, record.ID)
	}
}

func TestRepositoryApplyUpdatedAndDeleted(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	vendorID := uuid.New()
	keep := mustInsertRecord(t, conn, vendorID, "0.10")
	drop := mustInsertRecord(t, conn, vendorID, "0.20")

	update := Operation{
		State: StateUpdated,
		Entries: []SkillPriceEntry{{
			Ref:       PersistedRef(keep.ID),
			VendorID:  vendorID,
			SkillID:   keep.SkillID,
			SrcLangID: keep.SrcLangClassifierValueID,
			DstLangID: keep.DstLangClassifierValueID,
			Fees:      FeeSet{Word: decimal.RequireFromString("0.77")},
			Selected:  true,
		}},
	}
	require.NoError(t, repo.Apply(ctx, update))

	deletion := Operation{
		State: StateDeleted,
		Entries: []SkillPriceEntry{{
			Ref:       PersistedRef(drop.ID),
			VendorID:  vendorID,
			SkillID:   drop.SkillID,
			SrcLangID: drop.SrcLangClassifierValueID,
			DstLangID: drop.DstLangClassifierValueID,
			Selected:  false,
		}},
	}
	require.NoError(t, repo.Apply(ctx, deletion))

	records, err := repo.ListByVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, keep.ID, records[0].ID)
	assert.True(t, records[0].WordFee.Equal(decimal.RequireFromString("0.77")))
}

func TestRepositoryApplyUpdatedMissingRecord(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)

	op := Operation{
		State: StateUpdated,
		Entries: []SkillPriceEntry{{
			Ref:       PersistedRef(uuid.New()),
			VendorID:  uuid.New(),
			SkillID:   uuid.New(),
			SrcLangID: uuid.New(),
			DstLangID: uuid.New(),
			Selected:  true,
		}},
	}

	err := repo.Apply(context.Background(), op)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestRepositoryApplyValidationKeysByBatchIndex(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)

	vendorID := uuid.New()
	op := Operation{
		State: StateNew,
		Entries: []SkillPriceEntry{
			{
				Ref:       DraftRef(),
				VendorID:  vendorID,
				SkillID:   uuid.New(),
				SrcLangID: uuid.New(),
				DstLangID: uuid.New(),
				Selected:  true,
			},
			{
				Ref:       DraftRef(),
				VendorID:  vendorID,
				SkillID:   uuid.New(),
				SrcLangID: uuid.New(),
				DstLangID: uuid.New(),
				Fees:      FeeSet{Word: decimal.RequireFromString("-1")},
				Selected:  true,
			},
		},
	}

	err := repo.Apply(context.Background(), op)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	details, ok := coded.Details().(map[string]any)
	require.True(t, ok)
	fieldErrs, ok := details["errors"].(map[string][]string)
	require.True(t, ok)
	assert.Contains(t, fieldErrs, "data.1.word_fee")
	assert.NotContains(t, fieldErrs, "data.0.word_fee")

	var count int64
	require.NoError(t, conn.Model(&models.PriceRecord{}).Count(&count).Error)
	assert.Zero(t, count, "rejected batches must not persist anything")
}

func TestRepositoryApplyValidatesRefsPerState(t *testing.T) {
	conn := setupPricingTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	withID := SkillPriceEntry{
		Ref:       PersistedRef(uuid.New()),
		VendorID:  uuid.New(),
		SkillID:   uuid.New(),
		SrcLangID: uuid.New(),
		DstLangID: uuid.New(),
		Selected:  true,
	}
	withoutID := withID
	withoutID.Ref = DraftRef()

	err := repo.Apply(ctx, Operation{State: StateNew, Entries: []SkillPriceEntry{withID}})
	require.Error(t, err)
	details := pkgerrors.As(err).Details().(map[string]any)
	assert.Contains(t, details["errors"].(map[string][]string), "data.0.id")

	err = repo.Apply(ctx, Operation{State: StateDeleted, Entries: []SkillPriceEntry{withoutID}})
	require.Error(t, err)
	details = pkgerrors.As(err).Details().(map[string]any)
	assert.Contains(t, details["errors"].(map[string][]string), "data.0.id")
}
