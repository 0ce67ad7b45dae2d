package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

type stubVendorRepo struct {
	vendors map[uuid.UUID]*models.Vendor
}

func newStubVendorRepo() *stubVendorRepo {
	return &stubVendorRepo{vendors: map[uuid.UUID]*models.Vendor{}}
}

func (s *stubVendorRepo) Create(_ context.Context, vendor *models.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	s.vendors[vendor.ID] = vendor
	return nil
}

func (s *stubVendorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, ok := s.vendors[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return vendor, nil
}

func (s *stubVendorRepo) List(context.Context) ([]models.Vendor, error) {
	out := make([]models.Vendor, 0, len(s.vendors))
	for _, vendor := range s.vendors {
		out = append(out, *vendor)
	}
	return out, nil
}

func (s *stubVendorRepo) Save(context.Context, *models.Vendor) error { return nil }

type stubCopier struct {
	copied []uuid.UUID
	err    error
}

func (s *stubCopier) CopyDefaultToVendor(_ context.Context, vendorID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.copied = append(s.copied, vendorID)
	return nil
}

func TestCreateCopiesDiscountTable(t *testing.T) {
	repo := newStubVendorRepo()
	copier := &stubCopier{}
	svc, err := NewService(repo, copier, nil)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateVendorRequest{Name: "Lingua Nord"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.True(t, dto.IsActive)
	require.Len(t, copier.copied, 1)
	assert.Equal(t, dto.ID, copier.copied[0])
}

func TestCreateToleratesMissingDefaultTable(t *testing.T) {
	repo := newStubVendorRepo()
	copier := &stubCopier{err: pkgerrors.New(pkgerrors.CodeNotFound, "default discount table not found")}
	svc, err := NewService(repo, copier, nil)
	require.NoError(t, err)

	dto, err := svc.Create(context.Background(), CreateVendorRequest{Name: "Lingua Nord"})
	require.NoError(t, err, "vendor creation survives a missing default table")
	assert.NotEqual(t, uuid.Nil, dto.ID)
}

func TestCreatePropagatesCopyFailure(t *testing.T) {
	repo := newStubVendorRepo()
	copier := &stubCopier{err: pkgerrors.New(pkgerrors.CodeDependency, "database unavailable")}
	svc, err := NewService(repo, copier, nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateVendorRequest{Name: "Lingua Nord"})
	require.Error(t, err)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, err := NewService(newStubVendorRepo(), &stubCopier{}, nil)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
