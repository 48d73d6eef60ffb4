package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"loglan_core/internal/models"
	"loglan_core/internal/selectors"
)

// SourceService resolves what a word was built from: language sources for
// primitives, source words for complexes and compounds.
type SourceService struct {
	db *gorm.DB
}

func NewSourceService(db *gorm.DB) *SourceService {
	return &SourceService{db: db}
}

func requireType(w *models.Word) error {
	if w.Type == nil {
		return fmt.Errorf("%w: type of %s", ErrNotLoaded, w)
	}
	return nil
}

// PrimSources parses the origin of a composite primitive ("C-Prim") into
// its language sources. Other words have none.
func (s *SourceService) PrimSources(w *models.Word) ([]models.WordSource, error) {
	if err := requireType(w); err != nil {
		return nil, err
	}
	if w.Type.Group != models.GroupPrim || w.Type.Type != models.TypeCPrim {
		return nil, nil
	}

	parts := strings.Split(w.Origin, " | ")
	sources := make([]models.WordSource, 0, len(parts))
	for _, part := range parts {
		ws, err := models.ParseWordSource(part)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ws)
	}
	return sources, nil
}

// PrimOrigin describes a non-composite primitive as "name: origin < origin_x".
func (s *SourceService) PrimOrigin(w *models.Word) (string, error) {
	if err := requireType(w); err != nil {
		return "", err
	}
	if w.Type.Group != models.GroupPrim || w.Type.Type == models.TypeCPrim {
		return "", nil
	}
	origin := w.Name + ": " + w.Origin
	if w.OriginX != "" {
		origin += " < " + w.OriginX
	}
	return origin, nil
}

// ComplexSourceNames splits a complex's origin into the names it was built
// from: "pru(ci)+ka(kt)o" gives pruci and kakto. Hyphens y, r and n are
// dropped, as is a trailing r or h.
func (s *SourceService) ComplexSourceNames(w *models.Word) ([]string, error) {
	if err := requireType(w); err != nil {
		return nil, err
	}
	if w.Type.Group != models.GroupComplex || w.Origin == "" {
		return nil, nil
	}

	cleaned := strings.NewReplacer("(", "", ")", "", "/", "").Replace(w.Origin)
	var names []string
	for _, part := range strings.Split(cleaned, "+") {
		switch part {
		case "y", "r", "n":
			continue
		}
		if strings.HasSuffix(part, "r") || strings.HasSuffix(part, "h") {
			part = part[:len(part)-1]
		}
		names = append(names, part)
	}
	return names, nil
}

// ComplexSources loads the source words of a complex, skipping little
// words and compounds.
func (s *SourceService) ComplexSources(ctx context.Context, w *models.Word) ([]models.Word, error) {
	names, err := s.ComplexSourceNames(w)
	if err != nil || len(names) == 0 {
		return nil, err
	}
	return selectors.Words(selectors.ForDB(s.db)).
		ByNames(names...).
		ExcludeTypes(models.TypeLittle, models.TypeCompound).
		All(ctx, s.db)
}

// CompoundSourceNames splits a compound's origin on "+".
func (s *SourceService) CompoundSourceNames(w *models.Word) ([]string, error) {
	if err := requireType(w); err != nil {
		return nil, err
	}
	if w.Type.Type != models.TypeCompound || w.Origin == "" {
		return nil, nil
	}

	cleaned := strings.NewReplacer("(", "", ")", "", "/", "", "-", "").Replace(w.Origin)
	var names []string
	for _, part := range strings.Split(cleaned, "+") {
		if part == "" {
			continue
		}
		names = append(names, strings.TrimSpace(part))
	}
	return names, nil
}

// CompoundSources loads the little words and compounds a compound is made of.
func (s *SourceService) CompoundSources(ctx context.Context, w *models.Word) ([]models.Word, error) {
	names, err := s.CompoundSourceNames(w)
	if err != nil || len(names) == 0 {
		return nil, err
	}
	return selectors.Words(selectors.ForDB(s.db)).
		ByNames(names...).
		OnlyTypes(models.TypeLittle, models.TypeCompound).
		All(ctx, s.db)
}
