package driving

import (
	"context"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

// Assistant answers help-centre questions from the knowledge base.
// Every failure mode degrades to a valid response; Answer only errors
// on invalid input.
type Assistant interface {
	// Answer produces a structured response for one query.
	Answer(ctx context.Context, query domain.SupportQuery) (*domain.SupportResponse, error)

	// ClassifyIntent exposes the pure intent classifier, usable
	// independently for debugging and observability tooling.
	ClassifyIntent(query string) domain.Intent

	// Stats reports knowledge base counts.
	Stats(ctx context.Context) (*domain.Stats, error)
}

// DocumentSearch ranks documents for a query.
type DocumentSearch interface {
	// Rank returns up to limit documents ordered by relevance score
	// descending. categoryHint may be empty.
	Rank(ctx context.Context, query, categoryHint string, limit int) ([]domain.RankedDocument, error)

	// CategoryHint derives the likely category for a query.
	CategoryHint(query string) string
}

// ImageSearch ranks screenshots for a query.
type ImageSearch interface {
	// Rank returns up to limit images ordered by relevance score
	// descending. Returns empty immediately when the query carries no
	// visual intent.
	Rank(ctx context.Context, query, category string, limit int) ([]domain.RankedImage, error)
}
