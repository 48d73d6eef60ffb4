package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type migration struct {
	name string
	run  func(tx *gorm.DB) error
}

func execSQL(stmt string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Exec(stmt).Error
	}
}

// RunMigrations creates the dictionary schema. Every step is idempotent.
func RunMigrations(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	migrations := []migration{
		{"create dictionary tables", func(tx *gorm.DB) error { return tx.AutoMigrate(models.All()...) }},
		{"index connect_authors by word", execSQL(createConnectAuthorsWordIndex)},
		{"index connect_words by child", execSQL(createConnectWordsChildIndex)},
		{"index connect_keys by definition", execSQL(createConnectKeysDefinitionIndex)},
		{"index definitions by position", execSQL(createDefinitionsPositionIndex)},
		{"index keys by language", execSQL(createKeysLanguageIndex)},
	}

	tx := db.WithContext(ctx)
	for i, m := range migrations {
		log.Info("Running migration",
			zap.Int("step", i+1),
			zap.Int("total", len(migrations)),
			zap.String("name", m.name))
		if err := m.run(tx); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", i+1, m.name, err)
		}
	}

	log.Info("All migrations completed successfully")
	return nil
}

const createConnectAuthorsWordIndex = `
CREATE INDEX IF NOT EXISTS index_connect_authors_word ON connect_authors (word_id)
`

const createConnectWordsChildIndex = `
CREATE INDEX IF NOT EXISTS index_connect_words_child ON connect_words (child_id)
`

const createConnectKeysDefinitionIndex = `
CREATE INDEX IF NOT EXISTS index_connect_keys_definition ON connect_keys (definition_id)
`

const createDefinitionsPositionIndex = `
CREATE INDEX IF NOT EXISTS index_definitions_word_position ON definitions (word_id, "position")
`

const createKeysLanguageIndex = `
CREATE INDEX IF NOT EXISTS index_keys_language ON keys ("language")
`
