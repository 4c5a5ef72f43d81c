package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/storage/memory"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/services"
)

// allFiles treats every screenshot as present on disk.
type allFiles struct{}

func (allFiles) Exists(string) bool { return true }

// setupTestServices wires memory-backed services into the package
// vars and returns a cleanup that restores the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()

	oldAssistant := assistantService
	oldDocSearch := docSearchService
	oldImageSearch := imageSearch
	oldDocStore := docStore
	oldImageStore := imageStore

	docs := memory.NewDocumentStore()
	images := memory.NewImageStore(docs)
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		ID:        "doc-1",
		Title:     "Submitting Your Timesheet",
		Content:   "Navigate to Timesheets and click Submit to send your timesheet for approval.",
		URL:       "https://help.example.com/timesheets/submit",
		Category:  "timesheet",
		Keywords:  []string{"timesheet", "submit"},
		ScrapedAt: time.Now(),
	}))
	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		ID:        "doc-2",
		Title:     "Project Setup Guide",
		Content:   "Create a new project from the Projects page and configure its members.",
		URL:       "https://help.example.com/projects/setup",
		Category:  "project_management",
		Keywords:  []string{"project", "setup"},
		ScrapedAt: time.Now(),
	}))
	require.NoError(t, images.SaveImage(ctx, &domain.Image{
		ID:            "img-1",
		DocumentURL:   "https://help.example.com/timesheets/submit",
		LocalFilename: "timesheet_submit.png",
		AltText:       "submit timesheet button",
		ImageType:     "png",
		DownloadedAt:  time.Now(),
	}))

	scoring := domain.DefaultScoring()
	docRanker := services.NewDocumentRanker(docs, scoring)
	imageRanker := services.NewImageRanker(images, allFiles{}, scoring)
	imageRanker.SetPathPrefix("/images/")

	assistantService = services.NewAssistantService(docRanker, imageRanker, docs, images, nil)
	docSearchService = docRanker
	imageSearch = imageRanker
	docStore = docs
	imageStore = images

	return func() {
		assistantService = oldAssistant
		docSearchService = oldDocSearch
		imageSearch = oldImageSearch
		docStore = oldDocStore
		imageStore = oldImageStore
	}
}
