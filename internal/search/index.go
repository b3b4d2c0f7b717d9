// Package search adapts the vector store and embeddings client into the
// retrieval index consumed by the answer engine.
package search

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks policyqa/internal/search Embedder

import (
	"context"
	"fmt"

	"policyqa/internal/contextutil"
	"policyqa/internal/rag"
	"policyqa/internal/vectorstore"
)

// Payload field names under which chunk metadata is stored in the vector store.
const (
	payloadText       = "text"
	payloadSourceFile = "source_file"
	payloadPageNo     = "page_no"
	payloadChunkIndex = "chunk_index"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Index retrieves chunks from a vector store collection by embedding the
// query text. It implements rag.Index.
type Index struct {
	store      vectorstore.VectorStore
	embedder   Embedder
	collection string
}

// NewIndex creates a retrieval index over the given collection.
func NewIndex(store vectorstore.VectorStore, embedder Embedder, collection string) *Index {
	return &Index{
		store:      store,
		embedder:   embedder,
		collection: collection,
	}
}

// Search embeds the query and returns the top k chunks by similarity.
func (i *Index) Search(ctx context.Context, query string, k int) ([]rag.Chunk, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := i.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 query embedding, got %d", len(vectors))
	}

	results, err := i.store.Search(ctx, i.collection, vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	chunks := make([]rag.Chunk, 0, len(results))
	for _, result := range results {
		chunks = append(chunks, chunkFromMeta(result.Meta))
	}

	logger.DebugContext(ctx, "retrieved chunks", "collection", i.collection, "k", k, "count", len(chunks))
	return chunks, nil
}

// CountDocuments returns the number of unique source documents indexed.
func (i *Index) CountDocuments(ctx context.Context) (int, error) {
	sources, err := i.store.ListPayloadValues(ctx, i.collection, payloadSourceFile)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return len(sources), nil
}

// ListDocuments returns the distinct source document names indexed.
func (i *Index) ListDocuments(ctx context.Context) ([]string, error) {
	sources, err := i.store.ListPayloadValues(ctx, i.collection, payloadSourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return sources, nil
}

// chunkFromMeta maps a search result payload onto a chunk. Missing or
// malformed fields are left unset rather than failing the whole search.
func chunkFromMeta(meta map[string]any) rag.Chunk {
	chunk := rag.Chunk{}

	if text, ok := meta[payloadText].(string); ok {
		chunk.Text = text
	}
	if source, ok := meta[payloadSourceFile].(string); ok {
		chunk.SourceFile = source
	}
	if page, ok := intFromMeta(meta[payloadPageNo]); ok {
		chunk.PageNo = &page
	}
	if index, ok := intFromMeta(meta[payloadChunkIndex]); ok {
		chunk.ChunkIndex = &index
	}

	return chunk
}

// intFromMeta converts a payload value to int. Qdrant returns integers as
// int64 and numbers that round-tripped through JSON as float64.
func intFromMeta(value any) (int, bool) {
	switch v := value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
