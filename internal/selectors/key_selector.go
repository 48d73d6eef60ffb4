package selectors

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

// KeySelector queries keys, ordered by key word.
type KeySelector[T any] struct {
	selector[T]
}

func NewKeySelector[T any](opts ...Option) (KeySelector[T], error) {
	s, err := newSelector[T](reflect.TypeOf(models.Key{}), opts, "word")
	if err != nil {
		return KeySelector[T]{}, err
	}
	return KeySelector[T]{s}, nil
}

func Keys(opts ...Option) KeySelector[models.Key] {
	s, _ := NewKeySelector[models.Key](opts...)
	return s
}

// ByEvent keeps keys used by definitions of words active at the event.
func (s KeySelector[T]) ByEvent(eventID int64) KeySelector[T] {
	return KeySelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		sub := newDB(tx).Table(models.TableConnectKeys).
			Select("connect_keys.key_id").
			Joins("JOIN definitions ON definitions.id = connect_keys.definition_id").
			Where("? IN (?)", clause.Column{Table: models.TableDefinitions, Name: "word_id"}, activeWordIDs(tx, eventID))
		return tx.Where("? IN (?)", s.column("id"), sub)
	})}
}

// ByKey matches the key word; * is a wildcard.
func (s KeySelector[T]) ByKey(key string) KeySelector[T] {
	return KeySelector[T]{s.where(match(s.column("word"), key, s.opts))}
}

func (s KeySelector[T]) ByLanguage(language string) KeySelector[T] {
	if language == "" {
		return s
	}
	return KeySelector[T]{s.where(clause.Eq{Column: s.column("language"), Value: language})}
}

// ByWord keeps keys used by the definitions of wordID.
func (s KeySelector[T]) ByWord(wordID int64) KeySelector[T] {
	return KeySelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		sub := newDB(tx).Table(models.TableConnectKeys).
			Select("connect_keys.key_id").
			Joins("JOIN definitions ON definitions.id = connect_keys.definition_id").
			Where(clause.Eq{Column: clause.Column{Table: models.TableDefinitions, Name: "word_id"}, Value: wordID})
		return tx.Where("? IN (?)", s.column("id"), sub)
	})}
}

func (s KeySelector[T]) Preload(relations ...string) KeySelector[T] {
	return KeySelector[T]{s.preload(relations...)}
}
