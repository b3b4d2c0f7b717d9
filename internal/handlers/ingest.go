package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"policyqa/internal/contextutil"
	"policyqa/internal/ingest"
)

// Ingester runs document ingestion. Implemented by ingest.Pipeline.
type Ingester interface {
	IngestDir(ctx context.Context, dir string) (*ingest.Stats, error)
}

// IngestHandler handles HTTP requests to (re)index the policy documents.
type IngestHandler struct {
	pipeline Ingester
	docsDir  string
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(pipeline Ingester, docsDir string) *IngestHandler {
	return &IngestHandler{
		pipeline: pipeline,
		docsDir:  docsDir,
	}
}

// IngestResponse represents the result of an ingestion run.
//
// swagger:model IngestResponse
type IngestResponse struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

// ServeHTTP handles HTTP requests to re-ingest the document directory.
//
// swagger:route POST /api/ingest ingestDocuments
func (h *IngestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.pipeline.IngestDir(ctx, h.docsDir)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "dir", h.docsDir, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Ingestion failed")
		return
	}

	resp := IngestResponse{
		Documents: stats.Documents,
		Chunks:    stats.Chunks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode ingest response", "error", err)
	}
}

func (h *IngestHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
