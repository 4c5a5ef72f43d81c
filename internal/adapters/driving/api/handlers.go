package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driving"
	"github.com/chrona-labs/chrona-cli/internal/logger"
)

// Search endpoint limits.
const (
	defaultSearchLimit = 5
	maxSearchLimit     = 20
)

type handlers struct {
	assistant driving.Assistant
	docSearch driving.DocumentSearch
	version   string
}

// Wire types. The JSON contract uses snake_case throughout.

type chatTurnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type askRequest struct {
	Question      string            `json:"question"`
	UserRole      string            `json:"user_role,omitempty"`
	ProductModule string            `json:"product_module,omitempty"`
	CategoryHint  string            `json:"category_hint,omitempty"`
	History       []chatTurnPayload `json:"conversation_history,omitempty"`

	// IncludeImages defaults to true when omitted; screenshots are
	// part of the normal response and clients opt out explicitly.
	IncludeImages *bool `json:"include_images,omitempty"`
}

type rankedDocPayload struct {
	Title       string   `json:"title"`
	Content     string   `json:"content,omitempty"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Score       float64  `json:"score"`
}

type rankedImagePayload struct {
	Filename      string  `json:"filename"`
	Path          string  `json:"path"`
	AltText       string  `json:"alt_text,omitempty"`
	Caption       string  `json:"caption,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	DocumentTitle string  `json:"document_title"`
	DocumentURL   string  `json:"document_url"`
	Category      string  `json:"category"`
	StepNumber    int     `json:"step_number,omitempty"`
	Score         float64 `json:"score"`
}

type askResponse struct {
	Response         string               `json:"response"`
	Confidence       float64              `json:"confidence"`
	RelevantDocs     []rankedDocPayload   `json:"relevant_docs"`
	SuggestedActions []string             `json:"suggested_actions"`
	EscalationNeeded bool                 `json:"escalation_needed"`
	Images           []rankedImagePayload `json:"images"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *handlers) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	query := domain.SupportQuery{
		Query:         req.Question,
		UserRole:      req.UserRole,
		ProductModule: req.ProductModule,
		CategoryHint:  req.CategoryHint,
		SkipImages:    req.IncludeImages != nil && !*req.IncludeImages,
	}
	for _, turn := range req.History {
		query.History = append(query.History, domain.ChatTurn{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	resp, err := h.assistant.Answer(r.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "question must not be empty")
			return
		}
		logger.Warn("ask handler: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, toAskResponse(resp))
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter 'q'")
		return
	}

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxSearchLimit)
	}

	results, err := h.docSearch.Rank(
		r.Context(), q, r.URL.Query().Get("category"), limit)
	if err != nil {
		logger.Warn("search handler: %v", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	docs := make([]rankedDocPayload, 0, len(results))
	for i := range results {
		docs = append(docs, toDocPayload(&results[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": docs})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.assistant.Stats(r.Context())
	if err != nil {
		logger.Warn("stats handler: %v", err)
		writeError(w, http.StatusServiceUnavailable, "knowledge base unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total_documents": stats.TotalDocuments,
		"total_images":    stats.TotalImages,
		"categories":      stats.Categories,
	})
}

func toAskResponse(resp *domain.SupportResponse) askResponse {
	out := askResponse{
		Response:         resp.Response,
		Confidence:       resp.Confidence,
		RelevantDocs:     make([]rankedDocPayload, 0, len(resp.RelevantDocs)),
		SuggestedActions: resp.SuggestedActions,
		EscalationNeeded: resp.EscalationNeeded,
		Images:           make([]rankedImagePayload, 0, len(resp.Images)),
	}
	if out.SuggestedActions == nil {
		out.SuggestedActions = []string{}
	}
	for i := range resp.RelevantDocs {
		out.RelevantDocs = append(out.RelevantDocs, toDocPayload(&resp.RelevantDocs[i]))
	}
	for i := range resp.Images {
		img := &resp.Images[i]
		out.Images = append(out.Images, rankedImagePayload{
			Filename:      img.LocalFilename,
			Path:          img.LocalPath,
			AltText:       img.AltText,
			Caption:       img.Caption,
			Width:         img.Width,
			Height:        img.Height,
			DocumentTitle: img.DocumentTitle,
			DocumentURL:   img.DocumentURL,
			Category:      img.Category,
			StepNumber:    img.StepNumber,
			Score:         img.Score,
		})
	}
	return out
}

func toDocPayload(doc *domain.RankedDocument) rankedDocPayload {
	return rankedDocPayload{
		Title:       doc.Title,
		Content:     doc.Content,
		URL:         doc.URL,
		Category:    doc.Category,
		Subcategory: doc.Subcategory,
		Keywords:    doc.Keywords,
		Score:       doc.Score,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
