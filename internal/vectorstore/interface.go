package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks policyqa/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search over the collection.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// DeleteBySource removes all points whose source_file payload matches.
	DeleteBySource(ctx context.Context, collection string, sourceFile string) error

	// ListPayloadValues returns the distinct string values of a payload field
	// across all points in the collection.
	ListPayloadValues(ctx context.Context, collection string, field string) ([]string, error)

	// EnsureCollection creates the collection if missing and validates its
	// vector size if it already exists.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// Ping checks connectivity to the vector store.
	Ping(ctx context.Context) error
}
