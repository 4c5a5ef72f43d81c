package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrona-labs/chrona-cli/internal/adapters/driven/storage/memory"
	"github.com/chrona-labs/chrona-cli/internal/core/domain"
)

func newDocRankerWith(t *testing.T, docs ...*domain.Document) (*DocumentRanker, *memory.DocumentStore) {
	t.Helper()
	store := memory.NewDocumentStore()
	for _, doc := range docs {
		require.NoError(t, store.SaveDocument(context.Background(), doc))
	}
	return NewDocumentRanker(store, domain.DefaultScoring()), store
}

func TestDocumentRanker_Rank_TitleSubstringWins(t *testing.T) {
	ranker, _ := newDocRankerWith(t,
		&domain.Document{
			URL:      "u1",
			Title:    "Submitting Your Timesheet",
			Content:  "Use the Submit for Approval button.",
			Category: domain.CategoryTimesheet,
			Keywords: []string{"timesheet", "submit"},
		},
		&domain.Document{
			URL:      "u2",
			Title:    "Timesheet Periods",
			Content:  "Time periods control which dates you can submit.",
			Category: domain.CategoryTimesheet,
		},
	)

	docs, err := ranker.Rank(context.Background(), "submit my timesheet", domain.CategoryTimesheet, 3)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "Submitting Your Timesheet", docs[0].Title)
}

func TestDocumentRanker_Rank_SortedDescendingAndLimited(t *testing.T) {
	var seed []*domain.Document
	for _, title := range []string{"A timesheet", "B timesheet", "C timesheet", "D timesheet"} {
		seed = append(seed, &domain.Document{
			URL: title, Title: title, Content: "timesheet", Category: domain.CategoryTimesheet,
		})
	}
	ranker, _ := newDocRankerWith(t, seed...)

	docs, err := ranker.Rank(context.Background(), "timesheet help", "", 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	for i := 1; i < len(docs); i++ {
		assert.GreaterOrEqual(t, docs[i-1].Score, docs[i].Score)
	}
}

func TestDocumentRanker_Rank_CategoryBoost(t *testing.T) {
	ranker, _ := newDocRankerWith(t,
		&domain.Document{
			URL: "u1", Title: "Mobile Sync", Content: "sync data", Category: domain.CategoryMobile,
		},
		&domain.Document{
			URL: "u2", Title: "Desktop Sync", Content: "sync data", Category: domain.CategoryIntegration,
		},
	)

	docs, err := ranker.Rank(context.Background(), "sync data", domain.CategoryMobile, 3)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Mobile Sync", docs[0].Title)
	assert.Greater(t, docs[0].Score, docs[1].Score)
}

func TestDocumentRanker_Rank_LongContentPenalty(t *testing.T) {
	long := strings.Repeat("timesheet filler content ", 300) // > 5000 chars
	ranker, _ := newDocRankerWith(t,
		&domain.Document{URL: "u1", Title: "Short Guide", Content: "timesheet", Category: domain.CategoryTimesheet},
		&domain.Document{URL: "u2", Title: "Long Guide", Content: long, Category: domain.CategoryTimesheet},
	)

	docs, err := ranker.Rank(context.Background(), "timesheet", "", 3)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	var short, longDoc domain.RankedDocument
	for _, d := range docs {
		if d.Title == "Short Guide" {
			short = d
		} else {
			longDoc = d
		}
	}
	assert.Greater(t, short.Score, longDoc.Score)
}

func TestDocumentRanker_Rank_ContentTruncatedForDisplay(t *testing.T) {
	long := strings.Repeat("timesheet ", 100)
	ranker, _ := newDocRankerWith(t,
		&domain.Document{URL: "u1", Title: "Guide", Content: long, Category: domain.CategoryTimesheet},
	)

	docs, err := ranker.Rank(context.Background(), "timesheet", "", 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0].Content, 503) // 500 chars plus ellipsis
	assert.True(t, strings.HasSuffix(docs[0].Content, "..."))
}

func TestTruncate_KeepsRuneBoundary(t *testing.T) {
	// Three bytes per rune, so a cut at 500 lands mid-sequence.
	long := strings.Repeat("時間管理ガイド ", 50)
	got := truncate(long, 500)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCutAtRune(t *testing.T) {
	s := "日本語のガイド"
	got := cutAtRune(s, 4)
	assert.Equal(t, "日", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, s, cutAtRune(s, len(s)))
}

func TestDocumentRanker_Rank_NoMeaningfulTerms(t *testing.T) {
	ranker, _ := newDocRankerWith(t,
		&domain.Document{URL: "u1", Title: "Anything", Content: "the and or", Category: domain.CategoryGeneral},
	)

	// Every token is a stop word or shorter than three characters.
	docs, err := ranker.Rank(context.Background(), "how do i", "", 3)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentRanker_Rank_NilStore(t *testing.T) {
	ranker := NewDocumentRanker(nil, domain.DefaultScoring())

	docs, err := ranker.Rank(context.Background(), "timesheet", "", 3)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentRanker_Rank_StoreErrorFailsSoft(t *testing.T) {
	ranker := NewDocumentRanker(&failingDocStore{}, domain.DefaultScoring())

	docs, err := ranker.Rank(context.Background(), "timesheet", "", 3)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentRanker_Rank_Idempotent(t *testing.T) {
	ranker, _ := newDocRankerWith(t,
		&domain.Document{URL: "u1", Title: "Timesheet Entry", Content: "entry", Category: domain.CategoryTimesheet},
		&domain.Document{URL: "u2", Title: "Timesheet Approval", Content: "approve", Category: domain.CategoryTimesheet},
	)

	first, err := ranker.Rank(context.Background(), "timesheet entry", "", 3)
	require.NoError(t, err)
	second, err := ranker.Rank(context.Background(), "timesheet entry", "", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDocumentRanker_CategoryHint(t *testing.T) {
	ranker := NewDocumentRanker(nil, domain.DefaultScoring())

	assert.Equal(t, domain.CategoryTimesheet, ranker.CategoryHint("submit my timesheet"))
	assert.Equal(t, domain.CategoryGeneral, ranker.CategoryHint("tell me about the weather"))
}

func TestExtractSearchTerms(t *testing.T) {
	terms := extractSearchTerms("How do I submit my timesheet?")
	assert.Equal(t, []string{"submit", "timesheet"}, terms)

	assert.Empty(t, extractSearchTerms("how do i"))
	assert.Empty(t, extractSearchTerms(""))
}
