package selectors

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

// TypeFilter narrows words by their type. Empty fields are ignored; values
// are matched case-insensitively and may contain the * wildcard.
type TypeFilter struct {
	Type  string
	TypeX string
	Group string
}

func (f TypeFilter) IsZero() bool {
	return f.Type == "" && f.TypeX == "" && f.Group == ""
}

func (f TypeFilter) conditions(sqlite bool) []clause.Expression {
	insensitive := options{sqlite: sqlite}
	var conds []clause.Expression
	for _, c := range []struct{ column, value string }{
		{"type", f.Type},
		{"type_x", f.TypeX},
		{"group", f.Group},
	} {
		if c.value == "" {
			continue
		}
		conds = append(conds, match(clause.Column{Table: models.TableTypes, Name: c.column}, c.value, insensitive))
	}
	return conds
}

func (f TypeFilter) equalities() []clause.Expression {
	var conds []clause.Expression
	for _, c := range []struct{ column, value string }{
		{"type", f.Type},
		{"type_x", f.TypeX},
		{"group", f.Group},
	} {
		if c.value == "" {
			continue
		}
		conds = append(conds, clause.Eq{Column: clause.Column{Table: models.TableTypes, Name: c.column}, Value: c.value})
	}
	return conds
}

func newDB(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true})
}

// likePattern turns the user wildcard * into the SQL %.
func likePattern(s string) string {
	return strings.ReplaceAll(s, "*", "%")
}

// match compares col with a user pattern. GLOB already treats * as a
// wildcard, so sqlite case-sensitive matching keeps the pattern as is.
func match(col clause.Column, pattern string, o options) clause.Expression {
	switch {
	case o.caseSensitive && o.sqlite:
		return clause.Expr{SQL: "? GLOB ?", Vars: []any{col, pattern}}
	case o.caseSensitive:
		return clause.Expr{SQL: "? LIKE ?", Vars: []any{col, likePattern(pattern)}}
	case o.sqlite:
		return clause.Expr{SQL: "LOWER(?) LIKE LOWER(?)", Vars: []any{col, likePattern(pattern)}}
	default:
		return clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, likePattern(pattern)}}
	}
}

// latestEvent is the subquery used when no event is given.
func latestEvent(tx *gorm.DB) *gorm.DB {
	return newDB(tx).Model(&models.Event{}).Select("MAX(event_id)")
}

// activeAt keeps rows of table whose interval contains the event:
// event_start <= e AND (event_end > e OR event_end IS NULL).
func activeAt(tx *gorm.DB, table string, eventID int64) clause.Expression {
	var event any = eventID
	if eventID <= 0 {
		event = latestEvent(tx)
	}
	start := clause.Column{Table: table, Name: "event_start"}
	end := clause.Column{Table: table, Name: "event_end"}
	return clause.And(
		clause.Expr{SQL: "? <= (?)", Vars: []any{start, event}},
		clause.Or(
			clause.Expr{SQL: "? > (?)", Vars: []any{end, event}},
			clause.Expr{SQL: "? IS NULL", Vars: []any{end}},
		),
	)
}

// activeWordIDs selects ids of words active at the event.
func activeWordIDs(tx *gorm.DB, eventID int64) *gorm.DB {
	return newDB(tx).Table(models.TableWords).
		Select("words.id").
		Where(activeAt(tx, models.TableWords, eventID))
}

// keyedDefinitions selects definitions joined to keys matching key.
// The caller picks the projected column.
func keyedDefinitions(tx *gorm.DB, column, key, language string, o options) *gorm.DB {
	q := newDB(tx).Table(models.TableDefinitions).
		Select(column).
		Joins("JOIN connect_keys ON connect_keys.definition_id = definitions.id").
		Joins("JOIN keys ON keys.id = connect_keys.key_id").
		Where(match(clause.Column{Table: models.TableKeys, Name: "word"}, key, o))
	if language != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Table: models.TableKeys, Name: "language"}, Value: language})
	}
	return q
}

// typeIDs selects ids of types matching the filter.
func typeIDs(tx *gorm.DB, f TypeFilter, sqlite bool) *gorm.DB {
	return newDB(tx).Table(models.TableTypes).
		Select("types.id").
		Where(clause.And(f.conditions(sqlite)...))
}

// exactTypeIDs selects ids of types equal to every non-empty field of f.
func exactTypeIDs(tx *gorm.DB, f TypeFilter) *gorm.DB {
	return newDB(tx).Table(models.TableTypes).
		Select("types.id").
		Where(clause.And(f.equalities()...))
}

func linkedWordIDs(tx *gorm.DB, selectColumn, byColumn string, wordID int64) *gorm.DB {
	return newDB(tx).Table(models.TableConnectWords).
		Select(models.TableConnectWords + "." + selectColumn).
		Where(clause.Eq{Column: clause.Column{Table: models.TableConnectWords, Name: byColumn}, Value: wordID})
}
