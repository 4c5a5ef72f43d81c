package services

import (
	"context"
	"errors"

	"github.com/chrona-labs/chrona-cli/internal/core/domain"
	"github.com/chrona-labs/chrona-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// fakeFiles implements driven.FileChecker with a fixed set of
// present files. An empty set means every file exists.
type fakeFiles struct {
	present map[string]bool
	all     bool
}

func allFilesExist() *fakeFiles {
	return &fakeFiles{all: true}
}

func filesPresent(names ...string) *fakeFiles {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	return &fakeFiles{present: present}
}

func (f *fakeFiles) Exists(name string) bool {
	if f.all {
		return true
	}
	return f.present[name]
}

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (m *mockLLM) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	m.calls++
	m.lastSystem = systemPrompt
	m.lastUser = userMessage
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-model" }

func (m *mockLLM) Ping(_ context.Context) error { return nil }

func (m *mockLLM) Close() error { return nil }

// failingDocStore implements driven.DocumentStore and fails every call.
type failingDocStore struct{}

func (f *failingDocStore) SearchByTerms(_ context.Context, _ []string, _ string, _ int) ([]domain.Document, error) {
	return nil, errors.New("connection refused")
}

func (f *failingDocStore) GetByURL(_ context.Context, _ string) (*domain.Document, error) {
	return nil, errors.New("connection refused")
}

func (f *failingDocStore) SaveDocument(_ context.Context, _ *domain.Document) error {
	return errors.New("connection refused")
}

func (f *failingDocStore) Stats(_ context.Context) (*domain.Stats, error) {
	return nil, errors.New("connection refused")
}

// failingImageStore implements driven.ImageStore and fails every query.
type failingImageStore struct{}

func (f *failingImageStore) Query(_ context.Context, _ driven.ImageFilter, _ int) ([]driven.ImageRow, error) {
	return nil, errors.New("connection refused")
}

func (f *failingImageStore) SaveImage(_ context.Context, _ *domain.Image) error {
	return errors.New("connection refused")
}

func (f *failingImageStore) Count(_ context.Context) (int, error) {
	return 0, errors.New("connection refused")
}

// recordingImageStore wraps a driven.ImageStore and records the
// filters it was queried with, for tier short-circuit assertions.
type recordingImageStore struct {
	inner   driven.ImageStore
	filters []driven.ImageFilter
}

func (r *recordingImageStore) Query(ctx context.Context, filter driven.ImageFilter, limit int) ([]driven.ImageRow, error) {
	r.filters = append(r.filters, filter)
	return r.inner.Query(ctx, filter, limit)
}

func (r *recordingImageStore) SaveImage(ctx context.Context, img *domain.Image) error {
	return r.inner.SaveImage(ctx, img)
}

func (r *recordingImageStore) Count(ctx context.Context) (int, error) {
	return r.inner.Count(ctx)
}
