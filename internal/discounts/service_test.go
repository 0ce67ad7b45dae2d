package discounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	"github.com/tolkflow/tolkflow-backend/pkg/enums"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

type stubDiscountRepo struct {
	defaultTable *models.DiscountTable
	byVendor     map[uuid.UUID]*models.DiscountTable
	created      []*models.DiscountTable
}

func newStubDiscountRepo() *stubDiscountRepo {
	return &stubDiscountRepo{
		defaultTable: &models.DiscountTable{
			ID:          uuid.New(),
			Repetitions: decimal.NewFromInt(100),
			Match101:    decimal.NewFromInt(75),
		},
		byVendor: map[uuid.UUID]*models.DiscountTable{},
	}
}

func (s *stubDiscountRepo) Default(context.Context) (*models.DiscountTable, error) {
	if s.defaultTable == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "default discount table not found")
	}
	return s.defaultTable, nil
}

func (s *stubDiscountRepo) ForVendor(_ context.Context, vendorID uuid.UUID) (*models.DiscountTable, error) {
	table, ok := s.byVendor[vendorID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor discount table not found")
	}
	return table, nil
}

func (s *stubDiscountRepo) Create(_ context.Context, table *models.DiscountTable) error {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	s.created = append(s.created, table)
	if table.VendorID != nil {
		s.byVendor[*table.VendorID] = table
	}
	return nil
}

func (s *stubDiscountRepo) Save(context.Context, *models.DiscountTable) error { return nil }

func TestScheduleForVendorFallsBackToDefault(t *testing.T) {
	repo := newStubDiscountRepo()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	schedule, err := svc.ScheduleForVendor(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, schedule[enums.MatchTier101].Equal(decimal.NewFromInt(75)))
}

func TestScheduleForVendorPrefersOverride(t *testing.T) {
	repo := newStubDiscountRepo()
	vendorID := uuid.New()
	override := repo.defaultTable.CopyForVendor(vendorID)
	override.Match101 = decimal.NewFromInt(20)
	repo.byVendor[vendorID] = &override

	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	schedule, err := svc.ScheduleForVendor(context.Background(), vendorID)
	require.NoError(t, err)
	assert.True(t, schedule[enums.MatchTier101].Equal(decimal.NewFromInt(20)))
}

func TestCopyDefaultToVendorCreatesDetachedClone(t *testing.T) {
	repo := newStubDiscountRepo()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	vendorID := uuid.New()

	require.NoError(t, svc.CopyDefaultToVendor(context.Background(), vendorID))
	require.Len(t, repo.created, 1)
	clone := repo.created[0]
	require.NotNil(t, clone.VendorID)
	assert.Equal(t, vendorID, *clone.VendorID)
	assert.NotEqual(t, repo.defaultTable.ID, clone.ID)
	assert.True(t, clone.Match101.Equal(repo.defaultTable.Match101))
}

func TestUpdateForVendorMaterializesOverride(t *testing.T) {
	repo := newStubDiscountRepo()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	vendorID := uuid.New()

	dto, err := svc.UpdateForVendor(context.Background(), vendorID, UpdateDiscountsRequest{
		Tiers: map[string]decimal.Decimal{"101": decimal.NewFromInt(30)},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1, "missing override is copied from the default first")
	assert.True(t, dto.Tiers["101"].Equal(decimal.NewFromInt(30)))
	assert.True(t, dto.Tiers["repetitions"].Equal(decimal.NewFromInt(100)), "untouched tiers keep the copied value")
}

func TestUpdateDefaultValidatesTiers(t *testing.T) {
	svc, err := NewService(newStubDiscountRepo(), nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.UpdateDefault(ctx, UpdateDiscountsRequest{
		Tiers: map[string]decimal.Decimal{"110": decimal.NewFromInt(10)},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.UpdateDefault(ctx, UpdateDiscountsRequest{
		Tiers: map[string]decimal.Decimal{"101": decimal.NewFromInt(101)},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
