package rag

// Chunk is a contiguous fragment of source-document text with its provenance
// metadata, as returned by the vector index. Chunks are immutable once
// retrieved: the pipeline drops and reorders them but never rewrites their
// metadata.
type Chunk struct {
	// Text is the raw chunk text.
	Text string
	// SourceFile is the originating document filename. Empty means unknown.
	SourceFile string
	// PageNo is the 1-based page number within the source document, if known.
	PageNo *int
	// ChunkIndex is the chunk's position within its source document, assigned
	// at ingestion time, if known.
	ChunkIndex *int
}

// ScoredChunk pairs a chunk with its completeness score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// ConversationTurn is a single prior message in the chat session.
type ConversationTurn struct {
	// Role is "user" or "assistant".
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source is a citation entry parallel to the assembled context: Sources[i]
// describes the i-th chunk block appearing in the context, in the same order.
type Source struct {
	SourceFile string `json:"source_file"`
	PageNo     *int   `json:"page_no"`
	ChunkIndex *int   `json:"chunk_index"`
	// Text is a preview of the chunk text, truncated to sourcePreviewLimit.
	Text string `json:"text"`
}

// AskRequest represents a question for the pipeline to answer.
type AskRequest struct {
	// Question is the user's question. Must be non-empty; callers are
	// responsible for rejecting blank input before invoking the pipeline.
	Question string
	// K optionally overrides the base retrieval size. Zero means use the
	// engine's configured default.
	K int
	// History holds prior conversation turns, oldest first. Only the most
	// recent turns are included in the assembled context.
	History []ConversationTurn
}

// AskResponse is the pipeline's result.
type AskResponse struct {
	// Answer is the generated answer text.
	Answer string
	// Sources lists the provenance of every chunk block in the assembled
	// context, in context order.
	Sources []Source
	// RetrievedChunks is the number of chunks that survived filtering and
	// were included in the context.
	RetrievedChunks int
}
