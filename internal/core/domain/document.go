package domain

import "time"

// Document represents a scraped help-centre page.
// Documents are written by the crawler and read-only to the core.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the page title.
	Title string

	// Content is the extracted text content of the page.
	Content string

	// URL is the original page location. Unique across the store.
	URL string

	// Category is a coarse topic label (timesheet, mobile, ...).
	Category string

	// Subcategory is an optional finer topic label.
	Subcategory string

	// Keywords are extracted search keywords for the page.
	Keywords []string

	// ScrapedAt is when the page was crawled.
	ScrapedAt time.Time
}

// Image represents a screenshot extracted from a help-centre page.
// Every image belongs to exactly one document, linked by URL.
type Image struct {
	// ID is the unique identifier for the image record.
	ID string

	// DocumentURL links to the owning Document by URL.
	DocumentURL string

	// OriginalURL is where the image was downloaded from.
	OriginalURL string

	// LocalFilename is the file name under the images directory.
	// The file may be missing on disk; callers must check before use.
	LocalFilename string

	// AltText is the image's alt attribute, often empty or generic.
	AltText string

	// Caption is the surrounding figure caption, if any.
	Caption string

	// Width and Height are pixel dimensions.
	Width  int
	Height int

	// FileSize is the size in bytes.
	FileSize int64

	// ImageType is the file extension (png, jpg, ...).
	ImageType string

	// DownloadedAt is when the image was fetched.
	DownloadedAt time.Time
}

// RankedDocument is a document with its relevance score for one query.
// It exists only for the duration of a request.
type RankedDocument struct {
	// Title is the document title.
	Title string

	// Content is display content, truncated for presentation.
	Content string

	// URL is the document URL.
	URL string

	// Category is the document category.
	Category string

	// Subcategory is the document subcategory.
	Subcategory string

	// Keywords are the document keywords.
	Keywords []string

	// Score is the additive relevance score. Not a probability.
	Score float64
}

// RankedImage is an image with its semantic relevance score for one
// query, joined with display fields from its owning document.
type RankedImage struct {
	// LocalFilename is the image file name.
	LocalFilename string

	// LocalPath is the servable path to the image file.
	LocalPath string

	// AltText is the image alt text.
	AltText string

	// Caption is the image caption.
	Caption string

	// Width and Height are pixel dimensions.
	Width  int
	Height int

	// DocumentTitle is the owning document's title.
	DocumentTitle string

	// DocumentURL is the owning document's URL.
	DocumentURL string

	// Category is the owning document's category.
	Category string

	// StepNumber is a 1-based step position when the image belongs to
	// a step-by-step sequence, zero otherwise.
	StepNumber int

	// Score is the semantic relevance score. Not a probability.
	Score float64
}
