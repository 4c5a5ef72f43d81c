package domain

// ChatTurn is one message of prior conversation history.
type ChatTurn struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// SupportQuery is a single help request from a caller.
type SupportQuery struct {
	// Query is the user's question.
	Query string

	// UserRole optionally identifies the user (employee, manager,
	// admin, project_manager) to bias the answer.
	UserRole string

	// ProductModule optionally names the product area in question.
	ProductModule string

	// CategoryHint optionally pins the topic category. When empty the
	// assistant derives one from the query.
	CategoryHint string

	// History is recent conversation context, oldest first.
	History []ChatTurn

	// SkipImages suppresses screenshot attachment. By default images
	// are ranked for every query, gated only by detected intent.
	SkipImages bool
}

// SupportResponse is the assistant's structured answer.
type SupportResponse struct {
	// Response is the answer text.
	Response string

	// Confidence is the assistant's confidence in [0,1].
	Confidence float64

	// RelevantDocs are the documents the answer is grounded on,
	// ordered by relevance.
	RelevantDocs []RankedDocument

	// SuggestedActions are short next steps extracted from the answer.
	SuggestedActions []string

	// EscalationNeeded is true when the query should go to a human.
	EscalationNeeded bool

	// Images are screenshots supporting the answer, ordered by
	// relevance. Empty when no visual intent was detected.
	Images []RankedImage
}

// Stats summarises the knowledge base for observability endpoints.
type Stats struct {
	// TotalDocuments is the number of stored documents.
	TotalDocuments int

	// TotalImages is the number of stored image records.
	TotalImages int

	// Categories maps category name to document count.
	Categories map[string]int
}
