package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SourceLanguages maps the language letter of a prim source to its name.
var SourceLanguages = map[string]string{
	"E": "English",
	"C": "Chinese",
	"H": "Hindi",
	"R": "Russian",
	"S": "Spanish",
	"F": "French",
	"J": "Japanese",
	"G": "German",
}

var sourcePattern = regexp.MustCompile(`(\d+)/(\d+)(\w)`)

// WordSource is one language source of a composite primitive, written as
// "3/5R mesto": 3 of the 5 letters of the Russian "mesto" survive in the word.
type WordSource struct {
	Coincidence   int
	Length        int
	Language      string
	Transcription string
}

// ParseWordSource reads a source such as "2/3E act". The transcription may be
// missing ("4/4S"); the score may not.
func ParseWordSource(s string) (WordSource, error) {
	m := sourcePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return WordSource{}, fmt.Errorf("%w: %q", ErrNoSource, s)
	}
	coincidence, err := strconv.Atoi(s[m[2]:m[3]])
	if err != nil {
		return WordSource{}, fmt.Errorf("%w: %q: %v", ErrNoSource, s, err)
	}
	length, err := strconv.Atoi(s[m[4]:m[5]])
	if err != nil {
		return WordSource{}, fmt.Errorf("%w: %q: %v", ErrNoSource, s, err)
	}
	ws := WordSource{
		Coincidence: coincidence,
		Length:      length,
		Language:    s[m[6]:m[7]],
	}
	if _, rest, ok := strings.Cut(s[m[1]:], " "); ok {
		ws.Transcription = strings.TrimSpace(rest)
	}
	return ws, nil
}

// LanguageName is the full name of Language, or "" when unknown.
func (ws WordSource) LanguageName() string {
	return SourceLanguages[ws.Language]
}

// String formats the source back, or returns "" when any part is missing.
func (ws WordSource) String() string {
	if ws.Coincidence == 0 || ws.Length == 0 || ws.Language == "" || ws.Transcription == "" {
		return ""
	}
	return fmt.Sprintf("%d/%d%s %s", ws.Coincidence, ws.Length, ws.Language, ws.Transcription)
}
