package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type SyllableRepository struct {
	db *gorm.DB
}

func NewSyllableRepository(db *gorm.DB) *SyllableRepository {
	return &SyllableRepository{db: db}
}

func (r *SyllableRepository) Create(ctx context.Context, s *models.Syllable) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SyllableRepository) GetAll(ctx context.Context) ([]models.Syllable, error) {
	return all[models.Syllable](ctx, r.db, "id")
}

func (r *SyllableRepository) GetAllowed(ctx context.Context) ([]models.Syllable, error) {
	var syllables []models.Syllable
	if err := r.db.WithContext(ctx).Where("allowed = ?", true).Order("id").Find(&syllables).Error; err != nil {
		return nil, err
	}
	return syllables, nil
}
