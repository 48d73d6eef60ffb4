package models_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loglan_core/internal/models"
)

func TestParseWordSource(t *testing.T) {
	tests := []struct {
		in   string
		want models.WordSource
		str  string
	}{
		{"2/3E act", models.WordSource{Coincidence: 2, Length: 3, Language: "E", Transcription: "act"}, "2/3E act"},
		{"2/4C sh yen", models.WordSource{Coincidence: 2, Length: 4, Language: "C", Transcription: "sh yen"}, "2/4C sh yen"},
		{"3/5R mesto", models.WordSource{Coincidence: 3, Length: 5, Language: "R", Transcription: "mesto"}, "3/5R mesto"},
		{"4/4S", models.WordSource{Coincidence: 4, Length: 4, Language: "S"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := models.ParseWordSource(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseWordSource(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseWordSource_Invalid(t *testing.T) {
	for _, in := range []string{"", "ISV", "Lin. Testudines", "3/R act"} {
		_, err := models.ParseWordSource(in)
		require.ErrorIs(t, err, models.ErrNoSource, in)
	}
}

func TestWordSource_LanguageName(t *testing.T) {
	ws, err := models.ParseWordSource("2/5G probe")
	require.NoError(t, err)
	assert.Equal(t, "German", ws.LanguageName())
	assert.Equal(t, "", models.WordSource{Language: "X"}.LanguageName())
}
