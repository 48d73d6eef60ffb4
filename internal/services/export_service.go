package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"loglan_core/internal/models"
	"loglan_core/internal/selectors"
)

const (
	ExportSeparator = "@"

	eventDateLayout   = "01/02/2006"
	settingDateLayout = "02.01.2006 15:04:05"

	// event_end written for words still in use
	openEventEnd = 9999
)

var (
	ErrUnsupportedExport = errors.New("unsupported export type")
	ErrNotLoaded         = errors.New("required relation is not loaded")
	ErrUnknownTable      = errors.New("unknown export table")
)

// ExportTables lists the tables ExportTable accepts, in dump order.
var ExportTables = []string{"authors", "events", "types", "syllables", "settings", "words", "spell", "definitions"}

// ExportService renders dictionary rows as separator-joined text lines.
type ExportService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewExportService(db *gorm.DB, log *zap.Logger) *ExportService {
	return &ExportService{db: db, log: log}
}

// Export renders one entity. Words need Type, Authors and Derivatives.Type
// loaded; definitions need SourceWord.
func (s *ExportService) Export(v any) (string, error) {
	var items []any
	var err error
	switch e := v.(type) {
	case models.Author:
		items = exportAuthor(&e)
	case *models.Author:
		items = exportAuthor(e)
	case models.Event:
		items = exportEvent(&e)
	case *models.Event:
		items = exportEvent(e)
	case models.Type:
		items = exportType(&e)
	case *models.Type:
		items = exportType(e)
	case models.Syllable:
		items = exportSyllable(&e)
	case *models.Syllable:
		items = exportSyllable(e)
	case models.Setting:
		items = exportSetting(&e)
	case *models.Setting:
		items = exportSetting(e)
	case models.WordSpell:
		items = exportWordSpell(&e.Word)
	case *models.WordSpell:
		items = exportWordSpell(&e.Word)
	case models.Word:
		items, err = exportWord(&e)
	case *models.Word:
		items, err = exportWord(e)
	case models.Definition:
		items, err = exportDefinition(&e)
	case *models.Definition:
		items, err = exportDefinition(e)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedExport, v)
	}
	if err != nil {
		return "", err
	}
	return join(items), nil
}

// join mirrors the dump format: zero values become empty fields.
func join(items []any) string {
	parts := make([]string, len(items))
	for i, item := range items {
		switch x := item.(type) {
		case string:
			parts[i] = x
		case int:
			if x != 0 {
				parts[i] = strconv.Itoa(x)
			}
		case int64:
			if x != 0 {
				parts[i] = strconv.FormatInt(x, 10)
			}
		case *int64:
			if x != nil && *x != 0 {
				parts[i] = strconv.FormatInt(*x, 10)
			}
		case bool:
			parts[i] = pyBool(x)
		default:
			parts[i] = fmt.Sprint(x)
		}
	}
	return strings.Join(parts, ExportSeparator)
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func exportAuthor(a *models.Author) []any {
	return []any{a.Abbreviation, a.FullName, a.Notes}
}

func exportEvent(e *models.Event) []any {
	return []any{e.EventID, e.Name, e.Date.Format(eventDateLayout), e.Definition, e.Annotation, e.Suffix}
}

func exportType(t *models.Type) []any {
	return []any{t.Type, t.TypeX, t.Group, t.Parentable, t.Description}
}

func exportSyllable(s *models.Syllable) []any {
	return []any{s.Name, s.Type, s.Allowed}
}

func exportSetting(s *models.Setting) []any {
	return []any{s.Date.Format(settingDateLayout), s.DBVersion, s.LastWordID, s.DBRelease}
}

func exportWordSpell(w *models.Word) []any {
	var code strings.Builder
	for _, r := range w.Name {
		if unicode.IsUpper(r) {
			code.WriteByte('0')
		} else {
			code.WriteByte('5')
		}
	}
	end := int64(openEventEnd)
	if w.EventEndID != nil {
		end = *w.EventEndID
	}
	return []any{w.IDOld, w.Name, strings.ToLower(w.Name), code.String(), w.EventStartID, end, ""}
}

func exportWord(w *models.Word) ([]any, error) {
	if w.Type == nil {
		return nil, fmt.Errorf("%w: type of %s", ErrNotLoaded, w)
	}
	var affixes, usedIn []string
	for _, d := range w.Derivatives {
		if d.Type == nil {
			return nil, fmt.Errorf("%w: type of derivative %s", ErrNotLoaded, d)
		}
		if d.Type.TypeX == models.TypeXAffix {
			affixes = append(affixes, strings.ReplaceAll(d.Name, "-", ""))
		}
		if d.Type.Group == models.GroupComplex {
			usedIn = append(usedIn, d.Name)
		}
	}
	slices.Sort(affixes)
	slices.Sort(usedIn)

	return []any{
		w.IDOld,
		w.Type.Type,
		w.Type.TypeX,
		strings.Join(affixes, " "),
		w.Match,
		wordSource(w),
		wordYear(w),
		withNote(w.Rank, w.Note("rank")),
		w.Origin,
		w.OriginX,
		strings.Join(usedIn, " | "),
		w.TIDOld,
	}, nil
}

func wordSource(w *models.Word) string {
	abbreviations := make([]string, 0, len(w.Authors))
	for _, a := range w.Authors {
		abbreviations = append(abbreviations, a.Abbreviation)
	}
	slices.Sort(abbreviations)
	return withNote(strings.Join(abbreviations, "/"), w.Note("author"))
}

func wordYear(w *models.Word) string {
	if w.Year == nil {
		return ""
	}
	return withNote(strconv.Itoa(w.Year.Year()), w.Note("year"))
}

func withNote(value, note string) string {
	return strings.TrimSpace(value + " " + note)
}

func exportDefinition(d *models.Definition) ([]any, error) {
	if d.SourceWord == nil {
		return nil, fmt.Errorf("%w: word of %s", ErrNotLoaded, d)
	}
	grammar := d.GrammarCode
	if d.Slots != nil && *d.Slots != 0 {
		grammar = strconv.Itoa(*d.Slots) + grammar
	}
	return []any{d.SourceWord.IDOld, d.Position, d.Usage, grammar, d.Body, "", d.CaseTags}, nil
}

// ExportTable writes every row of table to w, one line per row.
func (s *ExportService) ExportTable(ctx context.Context, table string, w io.Writer) (int, error) {
	rows, err := s.load(ctx, table)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		line, err := s.Export(row)
		if err != nil {
			return 0, err
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return 0, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}

	s.log.Info("Exported table", zap.String("table", table), zap.Int("rows", len(rows)))
	return len(rows), nil
}

func (s *ExportService) load(ctx context.Context, table string) ([]any, error) {
	tx := s.db.WithContext(ctx)
	switch table {
	case "authors":
		return find[models.Author](tx.Order("abbreviation"))
	case "events":
		return find[models.Event](tx.Order("event_id"))
	case "types":
		return find[models.Type](tx.Order("id"))
	case "syllables":
		return find[models.Syllable](tx.Order("id"))
	case "settings":
		return find[models.Setting](tx.Order("date"))
	case "words":
		words, err := selectors.Words(selectors.ForDB(s.db)).
			Preload("Type", "Authors", "Derivatives.Type").
			All(ctx, s.db)
		return toAnySlice(words), err
	case "spell":
		sel, err := selectors.NewWordSelector[models.WordSpell](selectors.ForDB(s.db))
		if err != nil {
			return nil, err
		}
		spells, err := sel.All(ctx, s.db)
		return toAnySlice(spells), err
	case "definitions":
		defs, err := selectors.Definitions(selectors.ForDB(s.db)).Preload("SourceWord").All(ctx, s.db)
		return toAnySlice(defs), err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

func find[T any](tx *gorm.DB) ([]any, error) {
	var rows []T
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAnySlice(rows), nil
}

func toAnySlice[T any](rows []T) []any {
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out
}
