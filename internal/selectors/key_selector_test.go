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

func keyWords(keys []models.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.Word)
	}
	return out
}

func TestKeySelector(t *testing.T) {
	db := testutil.NewDictionary(t)
	ctx := context.Background()
	s := selectors.Keys(selectors.ForDB(db))

	tests := []struct {
		name string
		sel  selectors.KeySelector[models.Key]
		want []string
	}{
		{"exact", s.ByKey("test"), []string{"test"}},
		{"wildcard", s.ByKey("test*"), []string{"test", "testable", "testee", "tester"}},
		{"ignoring case", s.ByKey("ACT"), []string{"act"}},
		{"by word", s.ByWord(testutil.Kakto), []string{"act", "activity", "actor", "end", "undertake"}},
		{"by affix", s.ByWord(testutil.Pru), []string{"test"}},
		{"word and pattern", s.ByWord(testutil.Prukao).ByKey("test*"), []string{"test", "testable", "testee", "tester"}},
		{"other language", s.ByLanguage("fr"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := tt.sel.All(ctx, db)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keyWords(keys))
		})
	}
}

func TestKeySelector_Counts(t *testing.T) {
	db := testutil.NewDictionary(t)
	ctx := context.Background()
	s := selectors.Keys(selectors.ForDB(db))

	n, err := s.ByLanguage("en").Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)

	n, err = s.ByEvent(testutil.EventStart).Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	n, err = s.ByEvent(0).Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
}

func TestKeySelector_CaseSensitive(t *testing.T) {
	db := testutil.NewDictionary(t)
	s := selectors.Keys(selectors.ForDB(db), selectors.WithCaseSensitive(true))

	keys, err := s.ByKey("Test").All(context.Background(), db)
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = s.ByKey("test").All(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, keyWords(keys))
}

func TestKeySelector_Preload(t *testing.T) {
	db := testutil.NewDictionary(t)

	key, err := selectors.Keys(selectors.ForDB(db)).ByKey("testable").Preload("Definitions").Scalar(context.Background(), db)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Len(t, key.Definitions, 3)
}
