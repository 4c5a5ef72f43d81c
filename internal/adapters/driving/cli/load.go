package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

var loadCmd = &cobra.Command{
	Use:   "load [file]",
	Short: "Load a crawl dump into the knowledge base",
	Long: `Imports documents and images from a JSON crawl dump produced by the
documentation scraper. Existing records are updated in place, matched
by document URL and image filename.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

// crawlDump is the scraper's export format.
type crawlDump struct {
	Documents []crawlDocument `json:"documents"`
	Images    []crawlImage    `json:"images"`
}

type crawlDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Keywords    []string `json:"keywords"`
	ScrapedAt   string   `json:"scraped_at"`
}

type crawlImage struct {
	ID            string `json:"id"`
	DocumentURL   string `json:"document_url"`
	OriginalURL   string `json:"original_url"`
	LocalFilename string `json:"local_filename"`
	AltText       string `json:"alt_text"`
	Caption       string `json:"caption"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSize      int64  `json:"file_size"`
	ImageType     string `json:"image_type"`
	DownloadedAt  string `json:"downloaded_at"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	if docStore == nil || imageStore == nil {
		return errors.New("knowledge base not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read dump: %w", err)
	}

	var dump crawlDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return fmt.Errorf("failed to parse dump: %w", err)
	}

	ctx := context.Background()
	logger.Section("Load Crawl Dump")

	docs := 0
	for i := range dump.Documents {
		doc, err := dump.Documents[i].toDomain()
		if err != nil {
			return fmt.Errorf("document %q: %w", dump.Documents[i].URL, err)
		}
		if err := docStore.SaveDocument(ctx, doc); err != nil {
			return fmt.Errorf("failed to save document %q: %w", doc.URL, err)
		}
		docs++
	}

	images := 0
	for i := range dump.Images {
		img, err := dump.Images[i].toDomain()
		if err != nil {
			return fmt.Errorf("image %q: %w", dump.Images[i].LocalFilename, err)
		}
		if err := imageStore.SaveImage(ctx, img); err != nil {
			return fmt.Errorf("failed to save image %q: %w", img.LocalFilename, err)
		}
		images++
	}

	cmd.Printf("Loaded %d documents and %d images.\n", docs, images)
	return nil
}

func (d crawlDocument) toDomain() (*domain.Document, error) {
	if d.URL == "" {
		return nil, errors.New("missing url")
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}

	scrapedAt, err := parseDumpTime(d.ScrapedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Document{
		ID:          id,
		Title:       d.Title,
		Content:     d.Content,
		URL:         d.URL,
		Category:    d.Category,
		Subcategory: d.Subcategory,
		Keywords:    d.Keywords,
		ScrapedAt:   scrapedAt,
	}, nil
}

func (im crawlImage) toDomain() (*domain.Image, error) {
	if im.DocumentURL == "" {
		return nil, errors.New("missing document_url")
	}
	if im.LocalFilename == "" {
		return nil, errors.New("missing local_filename")
	}

	id := im.ID
	if id == "" {
		id = uuid.NewString()
	}

	downloadedAt, err := parseDumpTime(im.DownloadedAt)
	if err != nil {
		return nil, err
	}

	return &domain.Image{
		ID:            id,
		DocumentURL:   im.DocumentURL,
		OriginalURL:   im.OriginalURL,
		LocalFilename: im.LocalFilename,
		AltText:       im.AltText,
		Caption:       im.Caption,
		Width:         im.Width,
		Height:        im.Height,
		FileSize:      im.FileSize,
		ImageType:     im.ImageType,
		DownloadedAt:  downloadedAt,
	}, nil
}

// parseDumpTime accepts RFC 3339 timestamps and treats an empty value
// as the import time.
func parseDumpTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
