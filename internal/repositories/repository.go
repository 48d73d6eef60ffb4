package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// first loads one row matching conds, or nil when there is none.
func first[T any](ctx context.Context, tx *gorm.DB, conds ...any) (*T, error) {
	var row T
	if err := tx.WithContext(ctx).First(&row, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func all[T any](ctx context.Context, tx *gorm.DB, order string) ([]T, error) {
	var rows []T
	if err := tx.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
