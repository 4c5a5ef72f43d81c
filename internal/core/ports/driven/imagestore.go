package driven

import (
	"context"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

// ImageClause is one candidate condition. All fields are AND'd:
// every listed substring must appear in the named column, and the
// owning document's category must be one of Categories when set.
// Matching is case-insensitive substring containment.
type ImageClause struct {
	// TitleHas are substrings required in the document title.
	TitleHas []string

	// AltHas are substrings required in the image alt text.
	AltHas []string

	// ContentHas are substrings required in the document content.
	ContentHas []string

	// Categories restricts to documents in any of these categories.
	Categories []string
}

// ImageFilter describes one image retrieval query. Clauses are OR'd
// together; ExcludeTitle is a hard filter applied on top, regardless
// of how well a candidate would score later.
type ImageFilter struct {
	// Clauses are the OR'd candidate conditions. An empty slice
	// matches every image.
	Clauses []ImageClause

	// ExcludeTitle drops any candidate whose document title contains
	// one of these substrings. Not reversible by scoring.
	ExcludeTitle []string
}

// ImageRow is an image record joined with its owning document's
// display and scoring fields.
type ImageRow struct {
	// Image is the stored image record.
	Image domain.Image

	// DocTitle, DocURL, DocCategory and DocContent come from the
	// owning document.
	DocTitle    string
	DocURL      string
	DocCategory string
	DocContent  string
}

// ImageStore gives the core read access to screenshot records.
type ImageStore interface {
	// Query returns up to limit images matching the filter, joined
	// with their owning documents, ordered by document title then
	// image ID for stable ranking input.
	Query(ctx context.Context, filter ImageFilter, limit int) ([]ImageRow, error)

	// SaveImage stores an image record.
	SaveImage(ctx context.Context, img *domain.Image) error

	// Count returns the number of stored image records.
	Count(ctx context.Context) (int, error)
}

// FileChecker reports whether an image file exists on disk.
// Records whose files are missing are silently excluded from results;
// occasional store/disk inconsistency is expected.
type FileChecker interface {
	// Exists reports whether the named file is present.
	Exists(name string) bool
}
