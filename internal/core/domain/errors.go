package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates no document store is reachable.
	// Ranking degrades to empty results rather than failing the request.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The assistant falls back to deterministic template answers.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
