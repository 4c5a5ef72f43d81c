package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/storage/memory"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// seedKnowledgeBase builds a small store with project, timesheet and
// login pages plus one image each.
func seedKnowledgeBase(t *testing.T) (*memory.DocumentStore, *memory.ImageStore) {
	t.Helper()
	ctx := context.Background()

	docs := memory.NewDocumentStore()
	images := memory.NewImageStore(docs)

	pages := []*domain.Document{
		{
			URL:      "https://help.chrona.io/projects/setup",
			Title:    "Project Setup Guide",
			Content:  "Create a new project: open Projects, click New Project and fill in the setup form.",
			Category: domain.CategoryProjectManagement,
		},
		{
			URL:      "https://help.chrona.io/timesheets/submit",
			Title:    "Submitting Your Timesheet",
			Content:  "Open your timesheet, review your entries and click Submit for Approval.",
			Category: domain.CategoryTimesheet,
		},
		{
			URL:      "https://help.chrona.io/login",
			Title:    "Login and Password Help",
			Content:  "Reset your password from the login screen.",
			Category: domain.CategoryGeneral,
		},
	}
	for _, p := range pages {
		require.NoError(t, docs.SaveDocument(ctx, p))
	}

	records := []*domain.Image{
		{
			ID:            "img-project",
			DocumentURL:   "https://help.chrona.io/projects/setup",
			LocalFilename: "project_setup.png",
			AltText:       "new project dialog",
		},
		{
			ID:            "img-timesheet",
			DocumentURL:   "https://help.chrona.io/timesheets/submit",
			LocalFilename: "timesheet_submit.png",
			AltText:       "submit timesheet button",
		},
		{
			ID:            "img-login",
			DocumentURL:   "https://help.chrona.io/login",
			LocalFilename: "login_screen.png",
			AltText:       "login screen",
		},
	}
	for _, img := range records {
		require.NoError(t, images.SaveImage(ctx, img))
	}
	return docs, images
}

func TestImageRanker_Rank_NoneIntent_ReturnsEmpty(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())

	// No intent-triggering keywords at all; images must not be
	// fetched regardless of what the store contains.
	ranked, err := ranker.Rank(context.Background(), "tell me about overtime rules", "", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestImageRanker_Rank_ProjectSetup_Tier1ShortCircuits(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	recorder := &recordingImageStore{inner: images}
	ranker := NewImageRanker(recorder, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(context.Background(), "visual guide for setting up a new project", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "project_setup.png", ranked[0].LocalFilename)

	// Tier 1 matched, so tiers 2 and 3 must not have run.
	require.Len(t, recorder.filters, 1)
	require.NotEmpty(t, recorder.filters[0].Clauses)
	assert.Equal(t, []string{"project", "setup"}, recorder.filters[0].Clauses[0].TitleHas)
}

func TestImageRanker_Rank_ProjectSetup_FallsThroughTiers(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentStore()
	images := memory.NewImageStore(docs)

	// No title matches tier 1; the dashboard page only matches tier 3.
	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		URL:      "https://help.chrona.io/dashboard",
		Title:    "Dashboard Overview",
		Content:  "The dashboard shows your projects. Create or add items from the setup menu.",
		Category: domain.CategoryGeneral,
	}))
	require.NoError(t, images.SaveImage(ctx, &domain.Image{
		ID:            "img-dash",
		DocumentURL:   "https://help.chrona.io/dashboard",
		LocalFilename: "dashboard.png",
		AltText:       "main dashboard",
	}))

	recorder := &recordingImageStore{inner: images}
	ranker := NewImageRanker(recorder, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(ctx, "set up a new project", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "dashboard.png", ranked[0].LocalFilename)
	// Tier 2 matched on content "project" before tier 3 could run.
	assert.Len(t, recorder.filters, 2)
}

func TestImageRanker_Rank_MissingFileExcluded(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	// Only the timesheet screenshot exists on disk.
	ranker := NewImageRanker(images, filesPresent("timesheet_submit.png"), domain.DefaultScoring())

	ranked, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "timesheet_submit.png", ranked[0].LocalFilename)

	// Now remove it from disk too: nothing is returned, no error.
	ranker = NewImageRanker(images, filesPresent(), domain.DefaultScoring())
	ranked, err = ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestImageRanker_Rank_LoginTitleNeverReturned(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())

	// A general visual query matches every image structurally, but the
	// login page is excluded at retrieval, before scoring.
	ranked, err := ranker.Rank(context.Background(), "show me a step by step guide", "", 10)
	require.NoError(t, err)
	for _, img := range ranked {
		assert.NotContains(t, img.DocumentTitle, "Login")
	}
}

func TestImageRanker_Rank_ThresholdFiltersWeakMatches(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentStore()
	images := memory.NewImageStore(docs)

	// Category outside the navigation allow-list and no priority or
	// action terms anywhere: the candidate passes retrieval via the
	// alt-text clause but scores zero and the threshold drops it.
	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		URL:      "https://help.chrona.io/billing",
		Title:    "Rates Overview",
		Content:  "Billing rates explained.",
		Category: domain.CategoryBilling,
	}))
	require.NoError(t, images.SaveImage(ctx, &domain.Image{
		ID:            "img-rates",
		DocumentURL:   "https://help.chrona.io/billing",
		LocalFilename: "rates.png",
		AltText:       "site navigation pane",
	}))

	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(ctx, "where is the menu", "", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestImageRanker_Rank_SortedByScoreDescending(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentStore()
	images := memory.NewImageStore(docs)

	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		URL:      "https://help.chrona.io/timesheets/submit",
		Title:    "Submit Timesheet",
		Content:  "Click submit for approval.",
		Category: domain.CategoryTimesheet,
	}))
	require.NoError(t, docs.SaveDocument(ctx, &domain.Document{
		URL:      "https://help.chrona.io/timesheets",
		Title:    "Timesheet Entries Overview",
		Content:  "Timesheet entries submit automatically at period close.",
		Category: domain.CategoryTimesheet,
	}))
	require.NoError(t, images.SaveImage(ctx, &domain.Image{
		ID: "a", DocumentURL: "https://help.chrona.io/timesheets", LocalFilename: "entries.png",
		AltText: "timesheet grid",
	}))
	require.NoError(t, images.SaveImage(ctx, &domain.Image{
		ID: "b", DocumentURL: "https://help.chrona.io/timesheets/submit", LocalFilename: "submit.png",
		AltText: "submit timesheet",
	}))

	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(ctx, "submit my timesheet", "", 5)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "submit.png", ranked[0].LocalFilename)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestImageRanker_Rank_NilStore(t *testing.T) {
	ranker := NewImageRanker(nil, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestImageRanker_Rank_StoreErrorFailsSoft(t *testing.T) {
	ranker := NewImageRanker(&failingImageStore{}, allFilesExist(), domain.DefaultScoring())

	ranked, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestImageRanker_Rank_Idempotent(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())

	first, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestImageRanker_ScoreImage_DisqualifyPenalty(t *testing.T) {
	ranker := NewImageRanker(nil, nil, domain.DefaultScoring())

	intent := ClassifyIntent("submit my timesheet")
	require.Equal(t, domain.IntentTimesheet, intent.Type)

	clean := ranker.scoreImage(intent, rowWith("Timesheet Submit Guide", "submit timesheet", domain.CategoryTimesheet))
	dirty := ranker.scoreImage(intent, rowWith("Timesheet Submit Login", "submit timesheet", domain.CategoryTimesheet))

	// The disqualifying term in the title costs exactly the penalty.
	assert.InDelta(t, 15.0, clean-dirty, 0.001)
}

func TestImageRanker_ScoreImage_FlooredAtZero(t *testing.T) {
	ranker := NewImageRanker(nil, nil, domain.DefaultScoring())

	intent := ClassifyIntent("where is the menu")
	score := ranker.scoreImage(intent, rowWith("Login Password Email Authentication", "", domain.CategoryBilling))
	assert.Equal(t, 0.0, score)
}

func TestImageRanker_ScoreImage_MultibyteContent(t *testing.T) {
	ranker := NewImageRanker(nil, nil, domain.DefaultScoring())

	intent := ClassifyIntent("submit my timesheet")
	require.Equal(t, domain.IntentTimesheet, intent.Type)

	// The scored window ends inside a three-byte rune; the term ahead of
	// it must still count.
	row := rowWith("Guide", "", domain.CategoryBilling)
	row.DocContent = "timesheet " + strings.Repeat("時", 100)
	blank := rowWith("Guide", "", domain.CategoryBilling)

	assert.Greater(t, ranker.scoreImage(intent, row), ranker.scoreImage(intent, blank))
}

func TestImageRanker_SetPathPrefix(t *testing.T) {
	_, images := seedKnowledgeBase(t)
	ranker := NewImageRanker(images, allFilesExist(), domain.DefaultScoring())
	ranker.SetPathPrefix("/media/")

	ranked, err := ranker.Rank(context.Background(), "submit my timesheet", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "/media/timesheet_submit.png", ranked[0].LocalPath)
}

func rowWith(title, alt, category string) driven.ImageRow {
	return driven.ImageRow{
		Image:       domain.Image{AltText: alt},
		DocTitle:    title,
		DocCategory: category,
	}
}
