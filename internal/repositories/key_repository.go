package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type KeyRepository struct {
	db *gorm.DB
}

func NewKeyRepository(db *gorm.DB) *KeyRepository {
	return &KeyRepository{db: db}
}

func (r *KeyRepository) Create(ctx context.Context, key *models.Key) error {
	return r.db.WithContext(ctx).Create(key).Error
}

func (r *KeyRepository) GetByID(ctx context.Context, id int64) (*models.Key, error) {
	return first[models.Key](ctx, r.db, id)
}

func (r *KeyRepository) GetAll(ctx context.Context) ([]models.Key, error) {
	return all[models.Key](ctx, r.db, "word, language")
}

// GetOrCreate returns the key for word in language, inserting it if needed.
func (r *KeyRepository) GetOrCreate(ctx context.Context, word, language string) (*models.Key, error) {
	key := models.Key{Word: word, Language: language}
	err := r.db.WithContext(ctx).
		Where(map[string]any{"word": word, "language": language}).
		FirstOrCreate(&key).Error
	if err != nil {
		return nil, err
	}
	return &key, nil
}
