package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loglan_core/internal/models"
)

var (
	ErrNotParentable = errors.New("word type cannot have a parent")
	ErrWordNotFound  = errors.New("word not found")
	ErrAuthorMissing = errors.New("author not found")
)

// LinkerService records derivations between words and word authorship.
// Every link is idempotent.
type LinkerService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewLinkerService(db *gorm.DB, log *zap.Logger) *LinkerService {
	return &LinkerService{db: db, log: log}
}

// AddChild marks child as derived from parent and returns the child's name.
func (s *LinkerService) AddChild(ctx context.Context, parentID, childID int64) (string, error) {
	var name string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children, err := s.checkChildren(tx, parentID, []int64{childID})
		if err != nil {
			return err
		}
		name = children[0].Name
		return s.linkChildren(tx, parentID, children)
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// AddChildren links all children to parent, or none of them when any child
// is missing or not parentable.
func (s *LinkerService) AddChildren(ctx context.Context, parentID int64, childIDs []int64) error {
	if len(childIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children, err := s.checkChildren(tx, parentID, childIDs)
		if err != nil {
			return err
		}
		return s.linkChildren(tx, parentID, children)
	})
}

// AddAuthor credits author with word and returns the author's abbreviation.
func (s *LinkerService) AddAuthor(ctx context.Context, wordID, authorID int64) (string, error) {
	var abbreviation string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authors, err := s.checkAuthors(tx, wordID, []int64{authorID})
		if err != nil {
			return err
		}
		abbreviation = authors[0].Abbreviation
		return s.linkAuthors(tx, wordID, authors)
	})
	if err != nil {
		return "", err
	}
	return abbreviation, nil
}

func (s *LinkerService) AddAuthors(ctx context.Context, wordID int64, authorIDs []int64) error {
	if len(authorIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		authors, err := s.checkAuthors(tx, wordID, authorIDs)
		if err != nil {
			return err
		}
		return s.linkAuthors(tx, wordID, authors)
	})
}

func (s *LinkerService) checkChildren(tx *gorm.DB, parentID int64, childIDs []int64) ([]models.Word, error) {
	if err := s.wordExists(tx, parentID); err != nil {
		return nil, err
	}

	var children []models.Word
	if err := tx.Preload("Type").Where("id IN ?", childIDs).Order("id").Find(&children).Error; err != nil {
		return nil, err
	}

	found := make(map[int64]models.Word, len(children))
	for _, c := range children {
		found[c.ID] = c
	}
	ordered := make([]models.Word, 0, len(childIDs))
	for _, id := range childIDs {
		child, ok := found[id]
		switch {
		case id == parentID:
			return nil, fmt.Errorf("%w: word %d", models.ErrSelfDerivation, id)
		case !ok:
			return nil, fmt.Errorf("%w: %d", ErrWordNotFound, id)
		case child.Type == nil || !child.Type.Parentable:
			return nil, fmt.Errorf("%w: %s", ErrNotParentable, child)
		}
		ordered = append(ordered, child)
	}
	return ordered, nil
}

func (s *LinkerService) linkChildren(tx *gorm.DB, parentID int64, children []models.Word) error {
	rows := make([]map[string]any, 0, len(children))
	for _, c := range children {
		rows = append(rows, map[string]any{"parent_id": parentID, "child_id": c.ID})
	}
	if err := insertIgnore(tx, models.TableConnectWords, rows); err != nil {
		return fmt.Errorf("failed to link derivatives of word %d: %w", parentID, err)
	}
	s.log.Debug("Linked derivatives", zap.Int64("parent", parentID), zap.Int("children", len(children)))
	return nil
}

func (s *LinkerService) checkAuthors(tx *gorm.DB, wordID int64, authorIDs []int64) ([]models.Author, error) {
	if err := s.wordExists(tx, wordID); err != nil {
		return nil, err
	}

	var authors []models.Author
	if err := tx.Where("id IN ?", authorIDs).Find(&authors).Error; err != nil {
		return nil, err
	}
	found := make(map[int64]models.Author, len(authors))
	for _, a := range authors {
		found[a.ID] = a
	}
	ordered := make([]models.Author, 0, len(authorIDs))
	for _, id := range authorIDs {
		a, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrAuthorMissing, id)
		}
		ordered = append(ordered, a)
	}
	return ordered, nil
}

func (s *LinkerService) linkAuthors(tx *gorm.DB, wordID int64, authors []models.Author) error {
	rows := make([]map[string]any, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, map[string]any{"author_id": a.ID, "word_id": wordID})
	}
	if err := insertIgnore(tx, models.TableConnectAuthors, rows); err != nil {
		return fmt.Errorf("failed to link authors of word %d: %w", wordID, err)
	}
	s.log.Debug("Linked authors", zap.Int64("word", wordID), zap.Int("authors", len(authors)))
	return nil
}

func (s *LinkerService) wordExists(tx *gorm.DB, id int64) error {
	var n int64
	if err := tx.Model(&models.Word{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrWordNotFound, id)
	}
	return nil
}

// insertIgnore writes link rows, skipping those already present.
func insertIgnore(tx *gorm.DB, table string, rows []map[string]any) error {
	return tx.Table(table).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
