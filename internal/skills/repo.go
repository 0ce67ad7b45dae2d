package skills

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolkflow/tolkflow-backend/pkg/db/models"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
)

// Repository reads the skill catalog. The catalog is small and changes
// rarely; writes happen through migrations or admin tooling.
type Repository interface {
	List(ctx context.Context) ([]models.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.WithContext(ctx).Order("name").Find(&skills).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list skills")
	}
	return skills, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "skill not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load skill")
	}
	return &skill, nil
}
