package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"policyqa/internal/config"
	"policyqa/internal/handlers"
	"policyqa/internal/http"
	"policyqa/internal/ingest"
	"policyqa/internal/llm"
	"policyqa/internal/rag"
	"policyqa/internal/search"
	"policyqa/internal/storage"
	"policyqa/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about company HR policies using retrieval-augmented
// generation over ingested policy PDFs.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: PolicyQA API
//   description: |
//     Question-answering API over company policy documents. Policy PDFs are
//     chunked and indexed into a vector store; questions are answered from the
//     retrieved context with conversation history per session.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	sessionRepo := storage.NewSessionRepo(db)
	messageRepo := storage.NewMessageRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create ingestion pipeline
	splitter := ingest.NewSplitter(ingest.DefaultChunkSize, ingest.DefaultChunkOverlap)
	pipeline := ingest.NewPipeline(embedder, vectorStore, cfg.QdrantCollection, splitter)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	// Create retrieval index and answer engine
	index := search.NewIndex(vectorStore, embedder, cfg.QdrantCollection)

	engineOpts := rag.DefaultOptions()
	engineOpts.BaseK = cfg.BaseK
	engineOpts.CalendarYear = cfg.HolidayCalendarYear
	engineOpts.OfficeLocation = cfg.OfficeLocation
	engineOpts.CompanyName = cfg.CompanyName
	engine := rag.NewEngine(index, llmClient, engineOpts)
	slog.Info("Answer engine initialized", "base_k", engineOpts.BaseK)

	// Create router with dependencies
	deps := &http.Deps{
		ChatHandler:   handlers.NewChatHandler(engine, sessionRepo, messageRepo),
		IngestHandler: handlers.NewIngestHandler(pipeline, cfg.DocsDir),
		HealthHandler: handlers.NewHealthHandler(vectorStore, llmClient),
	}
	router := http.NewRouter(deps)

	// Start ingestion in background after router is ready
	go func() {
		ingestCtx := context.Background()
		slog.Info("Starting background ingestion of policy documents", "dir", cfg.DocsDir)
		if stats, err := pipeline.IngestDir(ingestCtx, cfg.DocsDir); err != nil {
			slog.Error("Ingestion completed with errors", "error", err)
		} else {
			slog.Info("Ingestion completed successfully", "documents", stats.Documents, "chunks", stats.Chunks)
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
