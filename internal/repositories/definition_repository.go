package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

type DefinitionRepository struct {
	db *gorm.DB
}

func NewDefinitionRepository(db *gorm.DB) *DefinitionRepository {
	return &DefinitionRepository{db: db}
}

func (r *DefinitionRepository) Create(ctx context.Context, def *models.Definition) error {
	return r.db.WithContext(ctx).Omit("Keys", "SourceWord").Create(def).Error
}

func (r *DefinitionRepository) GetByID(ctx context.Context, id int64) (*models.Definition, error) {
	return first[models.Definition](ctx, r.db.Preload("Keys"), id)
}

// GetByWord returns the definitions of a word in position order.
func (r *DefinitionRepository) GetByWord(ctx context.Context, wordID int64) ([]models.Definition, error) {
	var defs []models.Definition
	err := r.db.WithContext(ctx).
		Preload("Keys").
		Where("word_id = ?", wordID).
		Order("position").
		Find(&defs).Error
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// LinkMarkedKeys links def to a key for every «word» in its body, creating
// missing keys in the definition's language. Existing links are kept.
func (r *DefinitionRepository) LinkMarkedKeys(ctx context.Context, def *models.Definition) ([]models.Key, error) {
	var keys []models.Key
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewKeyRepository(tx)
		for _, word := range def.MarkedKeys() {
			key, err := repo.GetOrCreate(ctx, word, def.Language)
			if err != nil {
				return fmt.Errorf("failed to get key %q: %w", word, err)
			}
			link := map[string]any{"key_id": key.ID, "definition_id": def.ID}
			if err := tx.Table(models.TableConnectKeys).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error; err != nil {
				return fmt.Errorf("failed to link key %q: %w", word, err)
			}
			keys = append(keys, *key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
