package rag

import (
	"context"
	"io"
	"log/slog"
)

func init() {
	// Suppress pipeline logs during tests.
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// stubIndex is a minimal Index for exercising unexported pipeline stages.
type stubIndex struct {
	chunks    []Chunk
	docs      []string
	searchErr error
	countErr  error
	listErr   error
}

func (s *stubIndex) Search(ctx context.Context, query string, k int) ([]Chunk, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if k < len(s.chunks) {
		return s.chunks[:k], nil
	}
	return s.chunks, nil
}

func (s *stubIndex) CountDocuments(ctx context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return len(s.docs), nil
}

func (s *stubIndex) ListDocuments(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.docs, nil
}

func intPtr(n int) *int { return &n }
