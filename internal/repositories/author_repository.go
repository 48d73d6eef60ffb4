package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type AuthorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) *AuthorRepository {
	return &AuthorRepository{db: db}
}

func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	return r.db.WithContext(ctx).Create(author).Error
}

func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	return first[models.Author](ctx, r.db, id)
}

func (r *AuthorRepository) GetAll(ctx context.Context) ([]models.Author, error) {
	return all[models.Author](ctx, r.db, "abbreviation")
}

func (r *AuthorRepository) GetByAbbreviation(ctx context.Context, abbreviation string) (*models.Author, error) {
	return first[models.Author](ctx, r.db, "abbreviation = ?", abbreviation)
}
