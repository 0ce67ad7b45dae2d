package discounts

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
	"github.com/tolkflow/tolkflow-backend/pkg/enums"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

func setupDiscountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS discount_tables (
  id TEXT PRIMARY KEY,
  vendor_id TEXT UNIQUE,
  repetitions NUMERIC NOT NULL,
  match_101 NUMERIC NOT NULL,
  match_100 NUMERIC NOT NULL,
  match_95_99 NUMERIC NOT NULL,
  match_85_94 NUMERIC NOT NULL,
  match_75_84 NUMERIC NOT NULL,
  match_50_74 NUMERIC NOT NULL,
  match_0_49 NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(ddl).Error)
	return conn
}

func seedDefaultTable(t *testing.T, repo Repository) *models.DiscountTable {
	t.Helper()

	table := &models.DiscountTable{
		Repetitions: decimal.NewFromInt(100),
		Match101:    decimal.NewFromInt(75),
		Match100:    decimal.NewFromInt(75),
		Match95to99: decimal.NewFromInt(50),
		Match85to94: decimal.NewFromInt(25),
	}
	require.NoError(t, repo.Create(context.Background(), table))
	return table
}

func TestRepositoryDefaultAndVendorLookup(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	_, err := repo.Default(ctx)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	seedDefaultTable(t, repo)

	table, err := repo.Default(ctx)
	require.NoError(t, err)
	assert.Nil(t, table.VendorID)
	assert.True(t, table.Repetitions.Equal(decimal.NewFromInt(100)))

	_, err = repo.ForVendor(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestRepositoryCopyIsIndependentOfDefault(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	defaultTable := seedDefaultTable(t, repo)
	vendorID := uuid.New()

	clone := defaultTable.CopyForVendor(vendorID)
	require.NoError(t, repo.Create(ctx, &clone))
	assert.NotEqual(t, defaultTable.ID, clone.ID)

	// Mutating the default afterwards must not leak into the copy.
	defaultTable.ApplyTiers(map[enums.MatchTier]decimal.Decimal{
		enums.MatchTier101: decimal.NewFromInt(10),
	})
	require.NoError(t, repo.Save(ctx, defaultTable))

	stored, err := repo.ForVendor(ctx, vendorID)
	require.NoError(t, err)
	assert.True(t, stored.Match101.Equal(decimal.NewFromInt(75)), "copy keeps the value from creation time")

	freshDefault, err := repo.Default(ctx)
	require.NoError(t, err)
	assert.True(t, freshDefault.Match101.Equal(decimal.NewFromInt(10)))
}

func TestRepositoryRejectsSecondVendorCopy(t *testing.T) {
	conn := setupDiscountsTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	defaultTable := seedDefaultTable(t, repo)
	vendorID := uuid.New()

	first := defaultTable.CopyForVendor(vendorID)
	require.NoError(t, repo.Create(ctx, &first))

	second := defaultTable.CopyForVendor(vendorID)
	require.Error(t, repo.Create(ctx, &second))
}
