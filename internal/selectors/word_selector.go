package selectors

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

// WordSelector queries words. T is models.Word or a struct embedding it,
// such as models.WordSpell. Results are ordered by name.
type WordSelector[T any] struct {
	selector[T]
}

func NewWordSelector[T any](opts ...Option) (WordSelector[T], error) {
	s, err := newSelector[T](reflect.TypeOf(models.Word{}), opts, "name")
	if err != nil {
		return WordSelector[T]{}, err
	}
	return WordSelector[T]{s}, nil
}

// Words is NewWordSelector for models.Word, which cannot fail.
func Words(opts ...Option) WordSelector[models.Word] {
	s, _ := NewWordSelector[models.Word](opts...)
	return s
}

// ByEvent keeps words active at the event. Zero or negative eventID means
// the latest event.
func (s WordSelector[T]) ByEvent(eventID int64) WordSelector[T] {
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where(activeAt(tx, s.table, eventID))
	})}
}

// ByName matches the word name; * is a wildcard.
func (s WordSelector[T]) ByName(name string) WordSelector[T] {
	return WordSelector[T]{s.where(match(s.column("name"), name, s.opts))}
}

// ByKey keeps words with a definition linked to a matching key. An empty
// language matches keys of every language.
func (s WordSelector[T]) ByKey(key, language string) WordSelector[T] {
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		sub := keyedDefinitions(tx, "definitions.word_id", key, language, s.opts)
		return tx.Where("? IN (?)", s.column("id"), sub)
	})}
}

// ByType keeps words whose type matches every non-empty field of f.
func (s WordSelector[T]) ByType(f TypeFilter) WordSelector[T] {
	if f.IsZero() {
		return s
	}
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("? IN (?)", s.column("type"), typeIDs(tx, f, s.opts.sqlite))
	})}
}

func (s WordSelector[T]) ByTypeID(typeID int64) WordSelector[T] {
	return WordSelector[T]{s.where(clause.Eq{Column: s.column("type"), Value: typeID})}
}

// DerivativesOf keeps words derived from wordID, optionally narrowed by type.
// Unlike ByType, the filter fields are compared exactly.
func (s WordSelector[T]) DerivativesOf(wordID int64, f TypeFilter) WordSelector[T] {
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("? IN (?)", s.column("id"), linkedWordIDs(tx, "child_id", "parent_id", wordID))
		if f.IsZero() {
			return tx
		}
		return tx.Where("? IN (?)", s.column("type"), exactTypeIDs(tx, f))
	})}
}

// ComplexesOf keeps the complexes derived from wordID.
func (s WordSelector[T]) ComplexesOf(wordID int64) WordSelector[T] {
	return s.DerivativesOf(wordID, TypeFilter{Group: models.GroupComplex})
}

// AffixesOf keeps the affixes derived from wordID.
func (s WordSelector[T]) AffixesOf(wordID int64) WordSelector[T] {
	return s.DerivativesOf(wordID, TypeFilter{Type: models.TypeAffix})
}

// ParentsOf keeps the words wordID derives from.
func (s WordSelector[T]) ParentsOf(wordID int64) WordSelector[T] {
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("? IN (?)", s.column("id"), linkedWordIDs(tx, "parent_id", "child_id", wordID))
	})}
}

// ByNames keeps words whose name is one of names, exactly.
func (s WordSelector[T]) ByNames(names ...string) WordSelector[T] {
	return WordSelector[T]{s.where(clause.IN{Column: s.column("name"), Values: toAny(names)})}
}

// ExcludeTypes drops words whose type, type name or group is listed.
func (s WordSelector[T]) ExcludeTypes(values ...string) WordSelector[T] {
	if len(values) == 0 {
		return s
	}
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("? NOT IN (?)", s.column("type"), typesIn(tx, values))
	})}
}

// OnlyTypes keeps words whose type, type name or group is listed.
func (s WordSelector[T]) OnlyTypes(values ...string) WordSelector[T] {
	return WordSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("? IN (?)", s.column("type"), typesIn(tx, values))
	})}
}

// Preload loads the named relations with the rows.
func (s WordSelector[T]) Preload(relations ...string) WordSelector[T] {
	return WordSelector[T]{s.preload(relations...)}
}

func typesIn(tx *gorm.DB, values []string) *gorm.DB {
	vals := toAny(values)
	return newDB(tx).Table(models.TableTypes).
		Select("types.id").
		Where(clause.Or(
			clause.IN{Column: clause.Column{Table: models.TableTypes, Name: "type"}, Values: vals},
			clause.IN{Column: clause.Column{Table: models.TableTypes, Name: "type_x"}, Values: vals},
			clause.IN{Column: clause.Column{Table: models.TableTypes, Name: "group"}, Values: vals},
		))
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
