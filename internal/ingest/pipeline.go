package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks policyqa/internal/ingest Embedder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"policyqa/internal/contextutil"
	"policyqa/internal/vectorstore"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Stats summarizes an ingestion run.
type Stats struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

// Pipeline orchestrates loading policy PDFs, chunking them, and indexing the
// chunks into the vector store.
type Pipeline struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	splitter    *Splitter
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(embedder Embedder, vectorStore vectorstore.VectorStore, collection string, splitter *Splitter) *Pipeline {
	if splitter == nil {
		splitter = NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &Pipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		splitter:    splitter,
	}
}

// IngestDir ingests every PDF file found under dir.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	paths, err := listPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		logger.WarnContext(ctx, "no PDF files found", "dir", dir)
		return &Stats{}, nil
	}

	stats := &Stats{}
	for _, path := range paths {
		count, err := p.IngestFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to ingest %s: %w", filepath.Base(path), err)
		}
		stats.Documents++
		stats.Chunks += count
	}

	logger.InfoContext(ctx, "ingestion complete", "dir", dir, "documents", stats.Documents, "chunks", stats.Chunks)
	return stats, nil
}

// IngestFile ingests a single PDF file and returns the number of chunks
// indexed. Re-ingesting a file replaces its previous chunks.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	pages, err := LoadPDF(path)
	if err != nil {
		return 0, err
	}

	return p.ingestPages(ctx, filepath.Base(path), pages)
}

// ingestPages chunks the pages of one source document, embeds the chunks,
// and upserts them. Chunk indexes are assigned sequentially across the whole
// document in page order.
func (p *Pipeline) ingestPages(ctx context.Context, sourceFile string, pages []Page) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(pages) == 0 {
		logger.WarnContext(ctx, "no text extracted", "source_file", sourceFile)
		return 0, nil
	}

	var texts []string
	var pageNos []int
	for _, page := range pages {
		for _, chunk := range p.splitter.Split(page.Text) {
			texts = append(texts, chunk)
			pageNos = append(pageNos, page.PageNo)
		}
	}
	if len(texts) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "source_file", sourceFile)
		return 0, nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(texts) {
		return 0, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors))
	}

	// Drop any previous chunks of this document so re-ingestion replaces
	// rather than duplicates.
	if err := p.vectorStore.DeleteBySource(ctx, p.collection, sourceFile); err != nil {
		return 0, err
	}

	points := make([]vectorstore.Point, 0, len(texts))
	for i, text := range texts {
		points = append(points, vectorstore.Point{
			ID:  uuid.New().String(),
			Vec: vectors[i],
			Meta: map[string]any{
				"text":        text,
				"source_file": sourceFile,
				"page_no":     pageNos[i],
				"chunk_index": i,
			},
		})
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "indexed document", "source_file", sourceFile, "pages", len(pages), "chunks", len(points))
	return len(points), nil
}

// listPDFs returns the PDF files directly under dir, sorted by name.
func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read docs dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
