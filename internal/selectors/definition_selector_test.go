package selectors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loglan_core/internal/models"
	"loglan_core/internal/selectors"
	"loglan_core/internal/testutil"
)

func definitionIDs(defs []models.Definition) []int64 {
	ids := make([]int64, 0, len(defs))
	for _, d := range defs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestNewDefinitionSelector_ModelCheck(t *testing.T) {
	_, err := selectors.NewDefinitionSelector[models.Word]()
	require.ErrorIs(t, err, selectors.ErrInvalidModel)

	s, err := selectors.NewDefinitionSelector[models.Definition]()
	require.NoError(t, err)
	assert.Equal(t, models.TableDefinitions, s.Table())
}

func TestDefinitionSelector_ByKey(t *testing.T) {
	db := testutil.NewDictionary(t)
	ctx := context.Background()
	s := selectors.Definitions(selectors.ForDB(db))

	defs, err := s.ByKey("test", "en").All(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{17, 11, 12, 1, 5}, definitionIDs(defs))

	defs, err = s.ByKey("act*", "").All(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{15, 6, 7, 9, 10, 16}, definitionIDs(defs))

	defs, err = s.ByKey("test", "fr").All(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestDefinitionSelector_Filters(t *testing.T) {
	db := testutil.NewDictionary(t)
	ctx := context.Background()
	s := selectors.Definitions(selectors.ForDB(db))

	defs, err := s.ByWord(testutil.Kakto).All(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 7, 8, 9, 10}, definitionIDs(defs))
	for i, d := range defs {
		assert.Equal(t, i+1, d.Position)
	}

	tests := []struct {
		name string
		sel  selectors.DefinitionSelector[models.Definition]
		want int64
	}{
		{"start", s.ByEvent(testutil.EventStart), 11},
		{"latest", s.ByEvent(0), 17},
		{"english", s.ByLanguage("en"), 17},
		{"any language", s.ByLanguage(""), 17},
		{"french", s.ByLanguage("fr"), 0},
		{"word at start", s.ByWord(testutil.Prukao).ByEvent(testutil.EventStart), 0},
		{"word and key", s.ByWord(testutil.Pruci).ByKey("testable", "en"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.sel.Count(ctx, db)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestDefinitionSelector_Preload(t *testing.T) {
	db := testutil.NewDictionary(t)

	def, err := selectors.Definitions(selectors.ForDB(db)).
		ByWord(testutil.Prukao).
		Preload("Keys", "SourceWord").
		Scalar(context.Background(), db)
	require.NoError(t, err)
	require.NotNil(t, def)

	assert.Equal(t, int64(1), def.ID)
	require.NotNil(t, def.SourceWord)
	assert.Equal(t, "prukao", def.SourceWord.Name)

	var keys []string
	for _, k := range def.Keys {
		keys = append(keys, k.Word)
	}
	assert.ElementsMatch(t, []string{"examine", "test"}, keys)
	assert.ElementsMatch(t, keys, def.MarkedKeys())
}

func TestDefinitionSelector_SQL(t *testing.T) {
	pg := dryRunPostgres(t)

	sql := selectors.Definitions().ByKey("test", "en").ToSQL(pg)
	assert.Contains(t, sql, `"keys"."word" ILIKE 'test'`)
	assert.Contains(t, sql, `"keys"."language" = 'en'`)
	assert.Contains(t, sql, `ORDER BY "definitions"."word_id","definitions"."position"`)
}
