package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// Ensure ImageStore implements the interface.
var _ driven.ImageStore = (*ImageStore)(nil)

// ImageStore is an in-memory implementation of driven.ImageStore.
// It joins image records with documents from a companion DocumentStore.
type ImageStore struct {
	mu     sync.RWMutex
	images []domain.Image
	docs   *DocumentStore
}

// NewImageStore creates a new in-memory image store joined against docs.
func NewImageStore(docs *DocumentStore) *ImageStore {
	return &ImageStore{docs: docs}
}

// SaveImage stores an image record.
func (s *ImageStore) SaveImage(_ context.Context, img *domain.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, *img)
	return nil
}

// Count returns the number of stored image records.
func (s *ImageStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images), nil
}

// Query returns up to limit images matching the filter, joined with
// their owning documents, ordered by document title then image ID.
func (s *ImageStore) Query(
	ctx context.Context, filter driven.ImageFilter, limit int,
) ([]driven.ImageRow, error) {
	s.mu.RLock()
	images := make([]domain.Image, len(s.images))
	copy(images, s.images)
	s.mu.RUnlock()

	var rows []driven.ImageRow
	for _, img := range images {
		doc, err := s.docs.GetByURL(ctx, img.DocumentURL)
		if err != nil {
			// Orphaned image record; skip.
			continue
		}

		row := driven.ImageRow{
			Image:       img,
			DocTitle:    doc.Title,
			DocURL:      doc.URL,
			DocCategory: doc.Category,
			DocContent:  doc.Content,
		}

		if !matchesFilter(row, filter) {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].DocTitle != rows[j].DocTitle {
			return rows[i].DocTitle < rows[j].DocTitle
		}
		return rows[i].Image.ID < rows[j].Image.ID
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// matchesFilter applies the OR'd clauses and the hard title exclusion.
func matchesFilter(row driven.ImageRow, filter driven.ImageFilter) bool {
	titleLower := strings.ToLower(row.DocTitle)

	for _, term := range filter.ExcludeTitle {
		if strings.Contains(titleLower, term) {
			return false
		}
	}

	if len(filter.Clauses) == 0 {
		return true
	}

	for _, clause := range filter.Clauses {
		if matchesClause(row, clause) {
			return true
		}
	}
	return false
}

func matchesClause(row driven.ImageRow, clause driven.ImageClause) bool {
	titleLower := strings.ToLower(row.DocTitle)
	altLower := strings.ToLower(row.Image.AltText)
	contentLower := strings.ToLower(row.DocContent)

	for _, term := range clause.TitleHas {
		if !strings.Contains(titleLower, term) {
			return false
		}
	}
	for _, term := range clause.AltHas {
		if !strings.Contains(altLower, term) {
			return false
		}
	}
	for _, term := range clause.ContentHas {
		if !strings.Contains(contentLower, term) {
			return false
		}
	}
	if len(clause.Categories) > 0 {
		found := false
		for _, cat := range clause.Categories {
			if row.DocCategory == cat {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
