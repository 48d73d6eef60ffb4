package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loglan_core/internal/models"
	"loglan_core/internal/repositories"
	"loglan_core/internal/services"
	"loglan_core/internal/testutil"
)

type fakeSchema struct {
	tables []models.Table
	unique map[string]bool
}

func (f fakeSchema) table(name string) models.Table {
	for _, t := range f.tables {
		if t.Name == name {
			return t
		}
	}
	return models.Table{}
}

func (f fakeSchema) GetTables(context.Context) ([]string, error) {
	var names []string
	for _, t := range f.tables {
		names = append(names, t.Name)
	}
	return names, nil
}

func (f fakeSchema) GetColumns(_ context.Context, table string) ([]models.Column, error) {
	return f.table(table).Columns, nil
}

func (f fakeSchema) GetPrimaryKeys(_ context.Context, table string) ([]string, error) {
	return f.table(table).PrimaryKeys, nil
}

func (f fakeSchema) GetForeignKeys(_ context.Context, table string) ([]models.ForeignKey, error) {
	return f.table(table).ForeignKeys, nil
}

func (f fakeSchema) GetUniqueColumns(_ context.Context, columns []repositories.TableColumn) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, c := range columns {
		if f.unique[c.Key()] {
			out[c.Key()] = true
		}
	}
	return out, nil
}

func TestGenerateSchemaVisualization(t *testing.T) {
	source := fakeSchema{
		tables: []models.Table{
			{
				Name:        "authors",
				Columns:     []models.Column{{Name: "id", DataType: "bigint"}, {Name: "abbreviation", DataType: "character varying"}},
				PrimaryKeys: []string{"id"},
			},
			{
				Name:        "biographies",
				Columns:     []models.Column{{Name: "id", DataType: "bigint"}, {Name: "author_id", DataType: "bigint"}, {Name: "body", DataType: "text"}},
				PrimaryKeys: []string{"id"},
				ForeignKeys: []models.ForeignKey{{FromColumn: "author_id", ToTable: "authors", ToColumn: "id"}},
			},
			{
				Name:        "connect_authors",
				Columns:     []models.Column{{Name: "author_id", DataType: "bigint"}, {Name: "word_id", DataType: "bigint"}},
				PrimaryKeys: []string{"author_id", "word_id"},
				ForeignKeys: []models.ForeignKey{
					{FromColumn: "author_id", ToTable: "authors", ToColumn: "id"},
					{FromColumn: "word_id", ToTable: "words", ToColumn: "id"},
				},
			},
			{
				Name:        "words",
				Columns:     []models.Column{{Name: "id", DataType: "bigint"}, {Name: "year", DataType: "date"}, {Name: "created", DataType: "timestamp with time zone"}},
				PrimaryKeys: []string{"id"},
			},
		},
		unique: map[string]bool{"biographies:author_id": true},
	}

	diagram, err := services.NewSchemaService(source).VisualizeSchema(context.Background())
	require.NoError(t, err)

	want := "erDiagram\n" +
		"    BIOGRAPHIES ||--|| AUTHORS : \"\"\n" +
		"    AUTHORS }o--o{ WORDS : \"\"\n" +
		"\n" +
		"    AUTHORS {\n" +
		"        bigint id PK\n" +
		"        varchar abbreviation\n" +
		"    }\n\n" +
		"    BIOGRAPHIES {\n" +
		"        bigint id PK\n" +
		"        bigint author_id FK\n" +
		"        text body\n" +
		"    }\n\n" +
		"    CONNECT_AUTHORS {\n" +
		"        bigint author_id PK FK\n" +
		"        bigint word_id PK FK\n" +
		"    }\n\n" +
		"    WORDS {\n" +
		"        bigint id PK\n" +
		"        date year\n" +
		"        timestamptz created\n" +
		"    }\n\n"
	assert.Equal(t, want, diagram)
}

func TestGenerateSchemaVisualization_SQLite(t *testing.T) {
	db := testutil.NewDB(t)

	diagram, err := services.GenerateSchemaVisualization(context.Background(), repositories.NewSQLiteSchemaRepository(db))
	require.NoError(t, err)

	for _, line := range []string{
		"    DEFINITIONS ||--o{ WORDS : \"\"\n",
		"    WORDS ||--o{ TYPES : \"\"\n",
		"    WORDS ||--o{ EVENTS : \"\"\n",
		"    WORDS }o--o{ WORDS : \"\"\n",
		"    CONNECT_WORDS {\n",
		"        int parent_id PK FK\n",
		"        text name\n",
	} {
		assert.Contains(t, diagram, line)
	}
	assert.NotContains(t, diagram, "CONNECT_WORDS ||--o{")
}
