package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type TypeRepository struct {
	db *gorm.DB
}

func NewTypeRepository(db *gorm.DB) *TypeRepository {
	return &TypeRepository{db: db}
}

func (r *TypeRepository) Create(ctx context.Context, t *models.Type) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TypeRepository) GetByID(ctx context.Context, id int64) (*models.Type, error) {
	return first[models.Type](ctx, r.db, id)
}

func (r *TypeRepository) GetAll(ctx context.Context) ([]models.Type, error) {
	return all[models.Type](ctx, r.db, "id")
}

// GetByType finds a type by its short code, e.g. "C-Prim".
func (r *TypeRepository) GetByType(ctx context.Context, code string) (*models.Type, error) {
	return first[models.Type](ctx, r.db, "type = ?", code)
}
