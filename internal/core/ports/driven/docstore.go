package driven

import (
	"context"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

// DocumentStore gives the core read access to scraped help pages.
// Backed by SQLite; the crawler owns all writes except ingestion via
// SaveDocument, which the load command uses to import crawl dumps.
type DocumentStore interface {
	// SearchByTerms returns candidate documents where ANY term appears
	// in the title, content or keywords, unioned with all documents in
	// categoryHint's category when categoryHint is non-empty. Results
	// are ordered hinted-category-first, then title ascending, capped
	// at limit.
	SearchByTerms(ctx context.Context, terms []string, categoryHint string, limit int) ([]domain.Document, error)

	// GetByURL retrieves a document by its unique URL.
	// Returns domain.ErrNotFound when absent.
	GetByURL(ctx context.Context, url string) (*domain.Document, error)

	// SaveDocument stores or replaces a document, keyed by URL.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// Stats returns document counts, overall and per category.
	Stats(ctx context.Context) (*domain.Stats, error)
}
