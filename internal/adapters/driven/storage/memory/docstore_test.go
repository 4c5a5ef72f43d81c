package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

func TestNewDocumentStore(t *testing.T) {
	store := NewDocumentStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.documents)
}

func TestDocumentStore_SaveAndGetByURL(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	doc := &domain.Document{
		ID:       "doc-1",
		Title:    "Submitting Your Timesheet",
		Content:  "Open the timesheet and click submit.",
		URL:      "https://help.chrona.io/timesheets/submit",
		Category: domain.CategoryTimesheet,
		Keywords: []string{"timesheet", "submit"},
	}

	err := store.SaveDocument(ctx, doc)
	require.NoError(t, err)

	saved, err := store.GetByURL(ctx, doc.URL)
	require.NoError(t, err)
	assert.Equal(t, "Submitting Your Timesheet", saved.Title)
	assert.Equal(t, domain.CategoryTimesheet, saved.Category)
}

func TestDocumentStore_SaveDocument_ReplacesByURL(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	url := "https://help.chrona.io/page"
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{URL: url, Title: "Original"}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{URL: url, Title: "Updated"}))

	saved, err := store.GetByURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, "Updated", saved.Title)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
}

func TestDocumentStore_GetByURL_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.GetByURL(context.Background(), "https://help.chrona.io/missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_SearchByTerms_TermMatch(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u1", Title: "Timesheet Basics", Content: "entry", Category: domain.CategoryTimesheet,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u2", Title: "Billing Rates", Content: "invoices", Category: domain.CategoryBilling,
	}))

	docs, err := store.SearchByTerms(ctx, []string{"timesheet"}, "", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Timesheet Basics", docs[0].Title)
}

func TestDocumentStore_SearchByTerms_CategoryUnion(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	// No term overlap, but in the hinted category.
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u1", Title: "Approvals Overview", Content: "managers approve entries",
		Category: domain.CategoryTimesheet,
	}))

	docs, err := store.SearchByTerms(ctx, []string{"vacation"}, domain.CategoryTimesheet, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Approvals Overview", docs[0].Title)
}

func TestDocumentStore_SearchByTerms_Ordering(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u1", Title: "Zebra Projects", Content: "project", Category: domain.CategoryProjectManagement,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u2", Title: "Alpha Overview", Content: "project", Category: domain.CategoryGeneral,
	}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{
		URL: "u3", Title: "Beta Projects", Content: "project", Category: domain.CategoryProjectManagement,
	}))

	docs, err := store.SearchByTerms(ctx, []string{"project"}, domain.CategoryProjectManagement, 10)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	// Hinted category first, then title ascending.
	assert.Equal(t, "Beta Projects", docs[0].Title)
	assert.Equal(t, "Zebra Projects", docs[1].Title)
	assert.Equal(t, "Alpha Overview", docs[2].Title)
}

func TestDocumentStore_SearchByTerms_Limit(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	for _, url := range []string{"u1", "u2", "u3", "u4"} {
		require.NoError(t, store.SaveDocument(ctx, &domain.Document{
			URL: url, Title: "Timesheet " + url, Category: domain.CategoryTimesheet,
		}))
	}

	docs, err := store.SearchByTerms(ctx, []string{"timesheet"}, "", 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDocumentStore_Stats(t *testing.T) {
	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, &domain.Document{URL: "u1", Category: domain.CategoryTimesheet}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{URL: "u2", Category: domain.CategoryTimesheet}))
	require.NoError(t, store.SaveDocument(ctx, &domain.Document{URL: "u3", Category: domain.CategoryMobile}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalDocuments)
	assert.Equal(t, 2, stats.Categories[domain.CategoryTimesheet])
	assert.Equal(t, 1, stats.Categories[domain.CategoryMobile])
}
