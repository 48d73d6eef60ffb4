package selectors

import (
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

// DefinitionSelector queries definitions, ordered by word and position.
type DefinitionSelector[T any] struct {
	selector[T]
}

func NewDefinitionSelector[T any](opts ...Option) (DefinitionSelector[T], error) {
	s, err := newSelector[T](reflect.TypeOf(models.Definition{}), opts, "word_id", "position")
	if err != nil {
		return DefinitionSelector[T]{}, err
	}
	return DefinitionSelector[T]{s}, nil
}

func Definitions(opts ...Option) DefinitionSelector[models.Definition] {
	s, _ := NewDefinitionSelector[models.Definition](opts...)
	return s
}

// ByEvent keeps definitions of words active at the event.
func (s DefinitionSelector[T]) ByEvent(eventID int64) DefinitionSelector[T] {
	return DefinitionSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where("? IN (?)", s.column("word_id"), activeWordIDs(tx, eventID))
	})}
}

// ByKey keeps definitions linked to a key matching key. An empty language
// matches keys of every language.
func (s DefinitionSelector[T]) ByKey(key, language string) DefinitionSelector[T] {
	return DefinitionSelector[T]{s.with(func(tx *gorm.DB) *gorm.DB {
		sub := keyedDefinitions(tx, "definitions.id", key, language, s.opts)
		return tx.Where("? IN (?)", s.column("id"), sub)
	})}
}

func (s DefinitionSelector[T]) ByLanguage(language string) DefinitionSelector[T] {
	if language == "" {
		return s
	}
	return DefinitionSelector[T]{s.where(clause.Eq{Column: s.column("language"), Value: language})}
}

func (s DefinitionSelector[T]) ByWord(wordID int64) DefinitionSelector[T] {
	return DefinitionSelector[T]{s.where(clause.Eq{Column: s.column("word_id"), Value: wordID})}
}

func (s DefinitionSelector[T]) Preload(relations ...string) DefinitionSelector[T] {
	return DefinitionSelector[T]{s.preload(relations...)}
}
