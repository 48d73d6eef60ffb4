// Package selectors builds dictionary queries from chained filters.
//
// A selector is an immutable value: every filter returns a new selector and
// leaves the receiver untouched, so partial chains can be shared and
// extended independently. Nothing touches the database until one of the
// terminal methods (All, Scalar, FetchMany, Count) is called with a session.
package selectors

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var ErrInvalidModel = errors.New("selectors: invalid model")

type scope = func(*gorm.DB) *gorm.DB

type selector[T any] struct {
	table    string
	opts     options
	scopes   []scope
	order    []string
	preloads []string
}

func newSelector[T any](base reflect.Type, opts []Option, order ...string) (selector[T], error) {
	o := buildOptions(opts)
	model := reflect.TypeOf((*T)(nil)).Elem()
	if !o.skipModelCheck && !embeds(model, base) {
		return selector[T]{}, fmt.Errorf("%w: %s is neither %s nor a struct embedding it", ErrInvalidModel, model, base)
	}
	return selector[T]{
		table: tableOf[T](model),
		opts:  o,
		order: order,
	}, nil
}

func embeds(t, base reflect.Type) bool {
	if t == base {
		return true
	}
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && embeds(f.Type, base) {
			return true
		}
	}
	return false
}

func tableOf[T any](model reflect.Type) string {
	var zero T
	if t, ok := any(zero).(schema.Tabler); ok {
		return t.TableName()
	}
	if t, ok := any(&zero).(schema.Tabler); ok {
		return t.TableName()
	}
	return schema.NamingStrategy{}.TableName(model.Name())
}

func (s selector[T]) with(fn scope) selector[T] {
	next := s
	next.scopes = append(slices.Clip(s.scopes), fn)
	return next
}

func (s selector[T]) where(expr clause.Expression) selector[T] {
	return s.with(func(tx *gorm.DB) *gorm.DB {
		return tx.Where(expr)
	})
}

func (s selector[T]) preload(relations ...string) selector[T] {
	next := s
	next.preloads = append(slices.Clip(s.preloads), relations...)
	return next
}

func (s selector[T]) column(name string) clause.Column {
	return clause.Column{Table: s.table, Name: name}
}

// Table is the table the selector reads from.
func (s selector[T]) Table() string {
	return s.table
}

// Statement applies the accumulated filters to db without executing.
func (s selector[T]) Statement(db *gorm.DB) *gorm.DB {
	tx := db.Model(new(T)).Scopes(s.scopes...)
	for _, relation := range s.preloads {
		tx = tx.Preload(relation)
	}
	for _, name := range s.order {
		tx = tx.Order(clause.OrderByColumn{Column: s.column(name)})
	}
	return tx
}

// ToSQL renders the statement with its values inlined.
func (s selector[T]) ToSQL(db *gorm.DB) string {
	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []T
		return s.Statement(tx).Find(&rows)
	})
}

func (s selector[T]) All(ctx context.Context, db *gorm.DB) ([]T, error) {
	var rows []T
	if err := s.Statement(db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Scalar returns the first row, or nil when nothing matches.
func (s selector[T]) Scalar(ctx context.Context, db *gorm.DB) (*T, error) {
	rows, err := s.FetchMany(ctx, db, 1)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// FetchMany returns at most size rows.
func (s selector[T]) FetchMany(ctx context.Context, db *gorm.DB, size int) ([]T, error) {
	if size <= 0 {
		return nil, nil
	}
	var rows []T
	if err := s.Statement(db.WithContext(ctx)).Limit(size).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s selector[T]) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	if err := s.Statement(db.WithContext(ctx)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
