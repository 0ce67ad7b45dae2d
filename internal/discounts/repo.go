package discounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

// Repository persists discount tables. The institutional default is the
// single row with a null vendor id.
type Repository interface {
	Default(ctx context.Context) (*models.DiscountTable, error)
	ForVendor(ctx context.Context, vendorID uuid.UUID) (*models.DiscountTable, error)
	Create(ctx context.Context, table *models.DiscountTable) error
	Save(ctx context.Context, table *models.DiscountTable) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Default(ctx context.Context) (*models.DiscountTable, error) {
	var table models.DiscountTable
	err := r.db.WithContext(ctx).Where("vendor_id IS NULL").First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "default discount table not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default discount table")
	}
	return &table, nil
}

func (r *repository) ForVendor(ctx context.Context, vendorID uuid.UUID) (*models.DiscountTable, error) {
	var table models.DiscountTable
	err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor discount table not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor discount table")
	}
	return &table, nil
}

func (r *repository) Create(ctx context.Context, table *models.DiscountTable) error {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discount table")
	}
	return nil
}

func (r *repository) Save(ctx context.Context, table *models.DiscountTable) error {
	if err := r.db.WithContext(ctx).Save(table).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save discount table")
	}
	return nil
}
