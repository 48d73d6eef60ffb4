package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Create(ctx context.Context, s *models.Setting) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SettingRepository) GetAll(ctx context.Context) ([]models.Setting, error) {
	return all[models.Setting](ctx, r.db, "date")
}

// Latest returns the most recent release record.
func (r *SettingRepository) Latest(ctx context.Context) (*models.Setting, error) {
	return first[models.Setting](ctx, r.db.Order("date DESC"))
}
