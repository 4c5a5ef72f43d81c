package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// Ensure DocumentRanker implements the interface.
var _ driving.DocumentSearch = (*DocumentRanker)(nil)

// displayContentLimit caps the content attached to ranked results.
// Full content is used for scoring only.
const displayContentLimit = 500

var termPattern = regexp.MustCompile(`\b\w{3,}\b`)

// DocumentRanker scores and ranks help pages against a query.
type DocumentRanker struct {
	docStore driven.DocumentStore
	scoring  domain.Scoring
}

// NewDocumentRanker creates a new document ranker.
// The docStore parameter may be nil; ranking then yields empty results.
func NewDocumentRanker(docStore driven.DocumentStore, scoring domain.Scoring) *DocumentRanker {
	return &DocumentRanker{
		docStore: docStore,
		scoring:  scoring,
	}
}

// Rank returns up to limit documents ordered by relevance score
// descending. It fails soft: an unavailable store, a store error or a
// query with no meaningful terms all yield an empty list.
func (r *DocumentRanker) Rank(
	ctx context.Context, query, categoryHint string, limit int,
) ([]domain.RankedDocument, error) {
	logger.Section("Document Ranking")
	logger.Debug("Query: %q, category hint: %q, limit: %d", query, categoryHint, limit)

	if r.docStore == nil {
		logger.Warn("Document store unavailable, returning no results")
		return []domain.RankedDocument{}, nil
	}

	terms := extractSearchTerms(query)
	logger.Debug("Search terms: %v", terms)
	if len(terms) == 0 {
		// A query with no meaningful terms cannot be scored.
		return []domain.RankedDocument{}, nil
	}

	// Fetch extra candidates; scoring reorders them before the cut.
	candidates, err := r.docStore.SearchByTerms(ctx, terms, categoryHint, limit*2)
	if err != nil {
		logger.Warn("Candidate fetch failed: %v", err)
		return []domain.RankedDocument{}, nil
	}
	logger.Debug("Candidates: %d", len(candidates))

	ranked := make([]domain.RankedDocument, 0, len(candidates))
	for _, doc := range candidates {
		score := r.scoreDocument(query, terms, doc, categoryHint)
		ranked = append(ranked, domain.RankedDocument{
			Title:       doc.Title,
			Content:     truncate(doc.Content, displayContentLimit),
			URL:         doc.URL,
			Category:    doc.Category,
			Subcategory: doc.Subcategory,
			Keywords:    doc.Keywords,
			Score:       score,
		})
	}

	// Stable sort preserves the store's fetch order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	logger.Info("Ranked documents: %d", len(ranked))
	return ranked, nil
}

// CategoryHint derives the likely category for a query.
func (r *DocumentRanker) CategoryHint(query string) string {
	return domain.CategoryHint(query)
}

// scoreDocument computes the additive relevance score for one candidate.
func (r *DocumentRanker) scoreDocument(
	query string, terms []string, doc domain.Document, categoryHint string,
) float64 {
	s := r.scoring

	score := s.BaseBoost
	if categoryHint != "" && doc.Category == categoryHint {
		score = s.CategoryBoost
	}

	queryLower := strings.ToLower(query)
	titleLower := strings.ToLower(doc.Title)
	contentLower := strings.ToLower(doc.Content)
	keywordsLower := strings.ToLower(strings.Join(doc.Keywords, " "))

	// A full-query title match dominates everything else.
	if strings.Contains(titleLower, queryLower) {
		score += s.TitleSubstring
	}

	for _, term := range terms {
		if strings.Contains(titleLower, term) {
			score += s.TermInTitle
		}
		if strings.Contains(keywordsLower, term) {
			score += s.TermInKeywords
		}
		if strings.Contains(contentLower, term) {
			score += s.TermInContent
		}
	}

	// Very long pages tend to be less focused.
	if len(doc.Content) > s.LongContentChars {
		score *= s.LongContentFactor
	}

	return score
}

// extractSearchTerms tokenises a query into scoring terms: words of
// three or more characters, minus stop words.
func extractSearchTerms(query string) []string {
	words := termPattern.FindAllString(strings.ToLower(query), -1)
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := domain.StopWords[w]; !stop {
			terms = append(terms, w)
		}
	}
	return terms
}

// truncate shortens s to at most max bytes with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return cutAtRune(s, max) + "..."
}

// cutAtRune trims s to at most max bytes, backing off so a multi-byte
// rune is never split.
func cutAtRune(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
