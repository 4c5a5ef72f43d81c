// Package memory provides in-memory implementations of the storage
// ports. Used in tests and available as a zero-setup backend.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document // keyed by URL
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
	}
}

// SaveDocument stores or replaces a document, keyed by URL.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.URL] = *doc
	return nil
}

// GetByURL retrieves a document by its unique URL.
func (s *DocumentStore) GetByURL(_ context.Context, url string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[url]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// SearchByTerms returns documents matching any term in title, content
// or keywords, unioned with all documents in categoryHint's category.
// Ordering matches the SQLite adapter: hinted category first, then
// title ascending.
func (s *DocumentStore) SearchByTerms(
	_ context.Context, terms []string, categoryHint string, limit int,
) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Document
	for _, doc := range s.documents {
		if matchesAnyTerm(doc, terms) || (categoryHint != "" && doc.Category == categoryHint) {
			matched = append(matched, doc)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		bi := categoryHint != "" && matched[i].Category == categoryHint
		bj := categoryHint != "" && matched[j].Category == categoryHint
		if bi != bj {
			return bi
		}
		return matched[i].Title < matched[j].Title
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Stats returns document counts, overall and per category.
func (s *DocumentStore) Stats(_ context.Context) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.Stats{Categories: make(map[string]int)}
	for _, doc := range s.documents {
		stats.TotalDocuments++
		stats.Categories[doc.Category]++
	}
	return stats, nil
}

func matchesAnyTerm(doc domain.Document, terms []string) bool {
	titleLower := strings.ToLower(doc.Title)
	contentLower := strings.ToLower(doc.Content)
	keywordsLower := strings.ToLower(strings.Join(doc.Keywords, " "))

	for _, term := range terms {
		if strings.Contains(titleLower, term) ||
			strings.Contains(contentLower, term) ||
			strings.Contains(keywordsLower, term) {
			return true
		}
	}
	return false
}
