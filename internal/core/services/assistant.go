package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// Ensure AssistantService implements the interface.
var _ driving.Assistant = (*AssistantService)(nil)

// maxRelevantDocs bounds how many documents ground one answer.
const maxRelevantDocs = 3

// maxImages bounds how many screenshots accompany one answer.
const maxImages = 3

// historyTurns is how many trailing conversation turns are forwarded
// to the LLM.
const historyTurns = 4

// AssistantService answers help-centre questions by combining ranked
// documents and screenshots with LLM output, or with deterministic
// templates when no LLM is configured.
type AssistantService struct {
	docRanker   driving.DocumentSearch
	imageRanker driving.ImageSearch
	docStore    driven.DocumentStore
	imageStore  driven.ImageStore
	llm         driven.LLMService
}

// NewAssistantService creates a new assistant service.
// The llm parameter is optional (can be nil); the assistant then
// serves template answers.
func NewAssistantService(
	docRanker driving.DocumentSearch,
	imageRanker driving.ImageSearch,
	docStore driven.DocumentStore,
	imageStore driven.ImageStore,
	llm driven.LLMService,
) *AssistantService {
	return &AssistantService{
		docRanker:   docRanker,
		imageRanker: imageRanker,
		docStore:    docStore,
		imageStore:  imageStore,
		llm:         llm,
	}
}

// ClassifyIntent exposes the pure intent classifier.
func (s *AssistantService) ClassifyIntent(query string) domain.Intent {
	return ClassifyIntent(query)
}

// Answer produces a structured response for one query. Ranking
// failures, missing stores and LLM errors all degrade to a valid
// response; only an empty query is an error.
func (s *AssistantService) Answer(
	ctx context.Context, query domain.SupportQuery,
) (*domain.SupportResponse, error) {
	logger.Section("Answer Pipeline")

	if strings.TrimSpace(query.Query) == "" {
		return nil, fmt.Errorf("answer: %w", domain.ErrInvalidInput)
	}

	categoryHint := query.CategoryHint
	if categoryHint == "" {
		categoryHint = s.docRanker.CategoryHint(query.Query)
	}
	logger.Debug("Category hint: %q", categoryHint)

	// Document and image ranking are independent; run them in
	// parallel. Both fail soft, so the group never aborts the request.
	var (
		docs   []domain.RankedDocument
		images []domain.RankedImage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = s.docRanker.Rank(gctx, query.Query, categoryHint, maxRelevantDocs)
		return err
	})
	if !query.SkipImages {
		g.Go(func() error {
			var err error
			images, err = s.imageRanker.Rank(gctx, query.Query, categoryHint, maxImages)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn("Ranking error: %v", err)
	}

	logger.Info("Ranked: %d documents, %d images", len(docs), len(images))

	// Out-of-scope queries never get images, whatever the image
	// ranker found.
	if len(docs) == 0 {
		return s.outOfScopeResponse(query), nil
	}

	if s.llm == nil {
		logger.Debug("No LLM configured, using template answer")
		return s.fallbackResponse(query, docs, categoryHint, images), nil
	}

	systemPrompt := buildSystemPrompt(query.UserRole, len(images) > 0)
	userMessage := buildUserMessage(query, buildDocContext(docs))

	answer, err := s.llm.Complete(ctx, systemPrompt, userMessage)
	if err != nil {
		logger.Warn("LLM completion failed: %v", err)
		return s.fallbackResponse(query, docs, categoryHint, images), nil
	}

	answer = enhanceWithImages(answer, images)

	return &domain.SupportResponse{
		Response:         answer,
		Confidence:       assessConfidence(answer, docs, images),
		RelevantDocs:     docs,
		SuggestedActions: extractSuggestedActions(answer),
		EscalationNeeded: needsEscalation(answer),
		Images:           images,
	}, nil
}

// Stats reports knowledge base counts.
func (s *AssistantService) Stats(ctx context.Context) (*domain.Stats, error) {
	if s.docStore == nil {
		return nil, domain.ErrStoreUnavailable
	}
	stats, err := s.docStore.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("document stats: %w", err)
	}
	if s.imageStore != nil {
		count, err := s.imageStore.Count(ctx)
		if err == nil {
			stats.TotalImages = count
		}
	}
	return stats, nil
}
