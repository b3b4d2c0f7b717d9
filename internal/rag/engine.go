package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_index.go -package=mocks policyqa/internal/rag Index
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks policyqa/internal/rag Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks policyqa/internal/rag Engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"policyqa/internal/contextutil"
)

// Index is the vector index capability the pipeline consumes: approximate
// top-k retrieval plus metadata introspection over the same index. These
// interfaces are defined from the pipeline's perspective (consumer-first).
type Index interface {
	// Search returns the top k chunks for the (expanded) query.
	Search(ctx context.Context, query string, k int) ([]Chunk, error)
	// CountDocuments returns the number of unique source documents indexed.
	CountDocuments(ctx context.Context) (int, error)
	// ListDocuments returns the distinct source document names indexed.
	ListDocuments(ctx context.Context) ([]string, error)
}

// Generator is the text-generation capability: a single-shot completion over
// the assembled context.
type Generator interface {
	Generate(ctx context.Context, contextText, question string, today time.Time) (string, error)
}

// Options configures the pipeline's fixed parameters.
type Options struct {
	// BaseK is the default retrieval size when the caller supplies none.
	BaseK int
	// CalendarYear and OfficeLocation fill the holiday-query expansion.
	CalendarYear   string
	OfficeLocation string
	// CompanyName, when set, is added to the title-noise keyword list so
	// letterhead fragments naming the company are dropped.
	CompanyName string
	// Weights holds the completeness-score weight set.
	Weights ScoreWeights
}

// DefaultOptions returns production defaults for the pipeline.
func DefaultOptions() Options {
	return Options{
		BaseK:          4,
		CalendarYear:   "2025",
		OfficeLocation: "Bangalore",
		Weights:        DefaultScoreWeights(),
	}
}

// Engine answers questions over the indexed policy documents.
type Engine interface {
	// Ask runs the full retrieval-ranking and context-assembly pipeline for
	// one question and returns the generated answer with its citations.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// engine implements Engine. Each Ask invocation is an independent,
// synchronous pass over immutable inputs; the engine holds no mutable state,
// so concurrent questions are safe.
type engine struct {
	index         Index
	generator     Generator
	opts          Options
	titleKeywords []string
	now           func() time.Time
}

// NewEngine creates a new pipeline engine over the given index and generator.
func NewEngine(index Index, generator Generator, opts Options) Engine {
	titleKeywords := append([]string{}, baseTitleKeywords...)
	if opts.CompanyName != "" {
		titleKeywords = append(titleKeywords, strings.ToLower(opts.CompanyName))
	}
	return &engine{
		index:         index,
		generator:     generator,
		opts:          opts,
		titleKeywords: titleKeywords,
		now:           time.Now,
	}
}

// Ask runs the pipeline: expand the query, size retrieval, search, match,
// rank, filter, assemble the context, generate, and postprocess. External
// failures are not retried; they propagate to the caller.
func (e *engine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Question) == "" {
		return AskResponse{}, fmt.Errorf("question must not be empty")
	}

	baseK := req.K
	if baseK <= 0 {
		baseK = e.opts.BaseK
	}

	expanded := expandQuery(req.Question, e.opts)
	k, multiConcept, err := retrievalK(ctx, e.index, req.Question, baseK, expanded.DocListing)
	if err != nil {
		return AskResponse{}, err
	}
	logger.InfoContext(ctx, "retrieval sized",
		"k", k,
		"multi_concept", multiConcept,
		"doc_listing", expanded.DocListing,
	)

	candidates, err := e.index.Search(ctx, expanded.Query, k)
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to search index: %w", err)
	}
	if len(candidates) == 0 {
		logger.InfoContext(ctx, "no candidates retrieved")
		return AskResponse{
			Answer:  "I couldn't find any relevant information in the knowledge base to answer this question.",
			Sources: []Source{},
		}, nil
	}

	concepts := questionConcepts(req.Question)
	matched := matchChunks(candidates, concepts)
	ranked := rankChunks(matched, concepts, e.opts.Weights)
	logger.DebugContext(ctx, "chunks matched and ranked",
		"candidates", len(candidates),
		"matched", len(matched),
	)

	ordered := make([]Chunk, len(ranked))
	for i, sc := range ranked {
		ordered[i] = sc.Chunk
	}
	filtered := filterChunks(ordered, e.titleKeywords)
	note := diversityNote(filtered, multiConcept, len(ranked))
	logger.InfoContext(ctx, "chunks filtered",
		"ranked", len(ranked),
		"kept", len(filtered),
		"diversity_note", note != "",
	)

	assembled, err := assembleContext(ctx, e.index, filtered, expanded.DocListing, note, req.History)
	if err != nil {
		return AskResponse{}, err
	}

	answer, err := e.generator.Generate(ctx, assembled.Text, req.Question, e.now())
	if err != nil {
		return AskResponse{}, fmt.Errorf("failed to generate answer: %w", err)
	}
	answer = postprocessAnswer(answer, assembled.Sources)

	logger.InfoContext(ctx, "question answered",
		"retrieved_chunks", len(assembled.Sources),
		"answer_length", len(answer),
	)
	return AskResponse{
		Answer:          answer,
		Sources:         assembled.Sources,
		RetrievedChunks: len(assembled.Sources),
	}, nil
}
