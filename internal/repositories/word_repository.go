package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type WordRepository struct {
	db *gorm.DB
}

func NewWordRepository(db *gorm.DB) *WordRepository {
	return &WordRepository{db: db}
}

func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	return r.db.WithContext(ctx).Omit("Derivatives", "Parents", "Authors").Create(word).Error
}

func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	return first[models.Word](ctx, r.db, id)
}

func (r *WordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	return all[models.Word](ctx, r.db, "name, id")
}

// GetByName returns every word spelled name. Homonyms are ordered by id.
func (r *WordRepository) GetByName(ctx context.Context, name string) ([]models.Word, error) {
	var words []models.Word
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

// Load returns the word with everything the export needs attached.
func (r *WordRepository) Load(ctx context.Context, id int64) (*models.Word, error) {
	byName := func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }
	tx := r.db.
		Preload("Type").
		Preload("EventStart").
		Preload("EventEnd").
		Preload("Authors", func(tx *gorm.DB) *gorm.DB { return tx.Order("abbreviation") }).
		Preload("Definitions", func(tx *gorm.DB) *gorm.DB { return tx.Order("position") }).
		Preload("Definitions.Keys").
		Preload("Derivatives", byName).
		Preload("Derivatives.Type").
		Preload("Parents", byName)
	return first[models.Word](ctx, tx, id)
}

// Delete removes the word with its definitions and every link row.
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		definitions := tx.Model(&models.Definition{}).Select("id").Where("word_id = ?", id)
		steps := []struct {
			name string
			run  func() error
		}{
			{"key links", func() error {
				return tx.Exec("DELETE FROM connect_keys WHERE definition_id IN (?)", definitions).Error
			}},
			{"definitions", func() error {
				return tx.Where("word_id = ?", id).Delete(&models.Definition{}).Error
			}},
			{"author links", func() error {
				return tx.Exec("DELETE FROM connect_authors WHERE word_id = ?", id).Error
			}},
			{"derivation links", func() error {
				return tx.Exec("DELETE FROM connect_words WHERE parent_id = ? OR child_id = ?", id, id).Error
			}},
			{"word", func() error {
				return tx.Delete(&models.Word{}, id).Error
			}},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				return fmt.Errorf("failed to delete %s of word %d: %w", step.name, id, err)
			}
		}
		return nil
	})
}
