package services

import (
	"context"
	"sort"
	"strings"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// Ensure ImageRanker implements the interface.
var _ driving.ImageSearch = (*ImageRanker)(nil)

// DefaultImagePathPrefix is the servable path under which scraped
// image files are exposed.
const DefaultImagePathPrefix = "/static/images/scraped"

// contentScoreChars bounds how much document content participates in
// image scoring; screenshots relate to the top of their page.
const contentScoreChars = 300

// imageTier is one candidate-generation strategy in the fallback
// chain. Tiers are evaluated in order and the first one that yields a
// non-empty post-filter result set wins.
type imageTier struct {
	description string
	filter      driven.ImageFilter
	fetchLimit  func(limit int) int
}

// ImageRanker retrieves and scores screenshots against a query's
// classified intent.
type ImageRanker struct {
	imageStore driven.ImageStore
	files      driven.FileChecker
	scoring    domain.Scoring
	pathPrefix string
}

// NewImageRanker creates a new image ranker.
// The imageStore parameter may be nil; ranking then yields empty results.
func NewImageRanker(imageStore driven.ImageStore, files driven.FileChecker, scoring domain.Scoring) *ImageRanker {
	return &ImageRanker{
		imageStore: imageStore,
		files:      files,
		scoring:    scoring,
		pathPrefix: DefaultImagePathPrefix,
	}
}

// SetPathPrefix overrides the servable image path prefix.
func (r *ImageRanker) SetPathPrefix(prefix string) {
	r.pathPrefix = strings.TrimRight(prefix, "/")
}

// Rank returns up to limit images ordered by semantic relevance
// descending. It returns empty immediately when the query carries no
// visual intent, and fails soft on store errors.
func (r *ImageRanker) Rank(
	ctx context.Context, query, category string, limit int,
) ([]domain.RankedImage, error) {
	logger.Section("Image Ranking")
	logger.Debug("Query: %q, category: %q, limit: %d", query, category, limit)

	if r.imageStore == nil {
		logger.Warn("Image store unavailable, returning no results")
		return []domain.RankedImage{}, nil
	}

	intent := ClassifyIntent(query)
	logger.Info("Detected intent: %s (action=%s)", intent.Type, intent.SpecificAction)

	if intent.IsNone() {
		logger.Debug("No visual intent detected - not showing images")
		return []domain.RankedImage{}, nil
	}

	tiers := tiersForIntent(intent)
	for _, tier := range tiers {
		rows, err := r.imageStore.Query(ctx, tier.filter, tier.fetchLimit(limit))
		if err != nil {
			logger.Warn("Tier %q query failed: %v", tier.description, err)
			continue
		}
		logger.Debug("Tier %q: %d candidates", tier.description, len(rows))

		images := r.processResults(rows, intent)
		if len(images) > 0 {
			if len(images) > limit {
				images = images[:limit]
			}
			logger.Info("Tier %q selected %d images", tier.description, len(images))
			return images, nil
		}
	}

	logger.Debug("No relevant images found for intent %s", intent.Type)
	return []domain.RankedImage{}, nil
}

// tiersForIntent builds the ordered fallback chain for an intent.
// Only project setup needs multiple tiers; the other intents issue a
// single targeted query, refined by the specific action.
func tiersForIntent(intent domain.Intent) []imageTier {
	doubled := func(limit int) int { return limit * 2 }
	exact := func(limit int) int { return limit }

	switch intent.Type {
	case domain.IntentProjectSetup:
		return []imageTier{
			{
				description: "exact project setup matches",
				filter: driven.ImageFilter{
					Clauses: []driven.ImageClause{
						{TitleHas: []string{"project", "setup"}},
						{TitleHas: []string{"create", "project"}},
						{TitleHas: []string{"new", "project"}},
					},
					ExcludeTitle: []string{"login"},
				},
				fetchLimit: doubled,
			},
			{
				description: "general project management",
				filter: driven.ImageFilter{
					Clauses: []driven.ImageClause{
						{ContentHas: []string{"project"}},
						{AltHas: []string{"project"}},
						{Categories: []string{domain.CategoryProjectManagement}},
					},
					ExcludeTitle: []string{"login", "password"},
				},
				fetchLimit: doubled,
			},
			{
				description: "general interface screenshots",
				filter: driven.ImageFilter{
					Clauses: []driven.ImageClause{
						{TitleHas: []string{"dashboard"}},
						{TitleHas: []string{"main"}},
						{TitleHas: []string{"interface"}},
						{
							Categories: []string{domain.CategoryGeneral, domain.CategoryReporting},
							ContentHas: []string{"menu"},
						},
					},
					ExcludeTitle: []string{"login"},
				},
				fetchLimit: doubled,
			},
		}

	case domain.IntentTimesheet:
		if intent.SpecificAction == domain.ActionSubmit {
			return []imageTier{{
				description: "timesheet submission",
				filter: driven.ImageFilter{
					Clauses: []driven.ImageClause{
						{TitleHas: []string{"timesheet"}, ContentHas: []string{"submit"}},
						{AltHas: []string{"submit", "timesheet"}},
						{TitleHas: []string{"submit", "timesheet"}},
					},
				},
				fetchLimit: doubled,
			}}
		}
		return []imageTier{{
			description: "timesheet entry",
			filter: driven.ImageFilter{
				Clauses: []driven.ImageClause{
					{TitleHas: []string{"timesheet"}},
					{AltHas: []string{"timesheet"}},
					{Categories: []string{domain.CategoryTimesheet}, ContentHas: []string{"entry"}},
				},
				ExcludeTitle: []string{"login"},
			},
			fetchLimit: doubled,
		}}

	case domain.IntentMobile:
		return []imageTier{{
			description: "mobile app",
			filter: driven.ImageFilter{
				Clauses:      []driven.ImageClause{{Categories: []string{domain.CategoryMobile}}},
				ExcludeTitle: []string{"login"},
			},
			fetchLimit: doubled,
		}}

	case domain.IntentNavigation:
		return []imageTier{{
			description: "navigation and interface",
			filter: driven.ImageFilter{
				Clauses: []driven.ImageClause{
					{AltHas: []string{"menu"}},
					{AltHas: []string{"navigation"}},
					{ContentHas: []string{"menu"}},
					{ContentHas: []string{"navigate"}},
				},
				ExcludeTitle: []string{"login"},
			},
			fetchLimit: exact,
		}}

	case domain.IntentGeneralVisual:
		return []imageTier{{
			description: "general visual guide",
			filter: driven.ImageFilter{
				ExcludeTitle: []string{"login", "password", "email"},
			},
			fetchLimit: exact,
		}}
	}

	return nil
}

// processResults applies the uniform post-retrieval pipeline: drop
// records whose files are missing on disk, score the rest, keep only
// those strictly above the relevance threshold, sort descending.
func (r *ImageRanker) processResults(rows []driven.ImageRow, intent domain.Intent) []domain.RankedImage {
	images := make([]domain.RankedImage, 0, len(rows))
	for _, row := range rows {
		// A broken file reference is expected inconsistency, not an error.
		if r.files != nil && !r.files.Exists(row.Image.LocalFilename) {
			continue
		}

		score := r.scoreImage(intent, row)
		if score <= r.scoring.ImageThreshold {
			continue
		}

		images = append(images, domain.RankedImage{
			LocalFilename: row.Image.LocalFilename,
			LocalPath:     r.pathPrefix + "/" + row.Image.LocalFilename,
			AltText:       row.Image.AltText,
			Caption:       row.Image.Caption,
			Width:         row.Image.Width,
			Height:        row.Image.Height,
			DocumentTitle: row.DocTitle,
			DocumentURL:   row.DocURL,
			Category:      row.DocCategory,
			Score:         score,
		})
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Score > images[j].Score
	})

	for _, img := range images {
		logger.Debug("  - %s: %.1f - %s", img.LocalFilename, img.Score, img.DocumentTitle)
	}
	return images
}

// scoreImage computes the semantic relevance of one candidate for the
// classified intent. Scores are floored at zero.
func (r *ImageRanker) scoreImage(intent domain.Intent, row driven.ImageRow) float64 {
	s := r.scoring
	score := 0.0

	titleLower := strings.ToLower(row.DocTitle)
	altLower := strings.ToLower(row.Image.AltText)
	contentLower := strings.ToLower(cutAtRune(row.DocContent, contentScoreChars))

	for _, allowed := range domain.IntentCategories[intent.Type] {
		if row.DocCategory == allowed {
			score += s.CategoryMatch
			break
		}
	}

	// First location wins: a term in the title outweighs alt text,
	// which outweighs content.
	for _, term := range intent.PriorityTerms {
		switch {
		case strings.Contains(titleLower, term):
			score += s.PriorityInTitle
		case strings.Contains(altLower, term):
			score += s.PriorityInAlt
		case strings.Contains(contentLower, term):
			score += s.PriorityInContent
		}
	}

	for _, kw := range domain.ActionKeywords[intent.SpecificAction] {
		if strings.Contains(titleLower, kw) || strings.Contains(contentLower, kw) {
			score += s.ActionMatch
		}
	}

	// The title penalty overlaps with the retrieval-level exclusion on
	// purpose; it also catches titles a tier's filter let through.
	for _, term := range domain.DisqualifyingTerms {
		if strings.Contains(titleLower, term) {
			score -= s.DisqualifyPenalty
		}
	}

	if score < 0 {
		return 0
	}
	return score
}
