package vendors

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

type Repository interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
	Save(ctx context.Context, vendor *models.Vendor) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, vendor *models.Vendor) error {
	if vendor.ID == uuid.Nil {
		vendor.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return &vendor, nil
}

func (r *repository) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := r.db.WithContext(ctx).Order("name").Find(&vendors).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	return vendors, nil
}

func (r *repository) Save(ctx context.Context, vendor *models.Vendor) error {
	if err := r.db.WithContext(ctx).Save(vendor).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save vendor")
	}
	return nil
}
