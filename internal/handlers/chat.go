package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"policyqa/internal/contextutil"
	"policyqa/internal/rag"
	"policyqa/internal/storage"
)

// maxUserK bounds client-provided k values.
const maxUserK = 20

// historyTurns is how many stored messages are replayed into the engine.
const historyTurns = 10

// ChatHandler handles HTTP requests for policy questions.
type ChatHandler struct {
	engine   rag.Engine
	sessions storage.SessionStore
	messages storage.MessageStore
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine rag.Engine, sessions storage.SessionStore, messages storage.MessageStore) *ChatHandler {
	return &ChatHandler{
		engine:   engine,
		sessions: sessions,
		messages: messages,
	}
}

// ChatRequest represents the HTTP request payload for policy questions.
//
// swagger:model ChatRequest
type ChatRequest struct {
	// The user's question
	Query string `json:"query"`

	// Base number of chunks to retrieve. Zero means the server default.
	K int `json:"k,omitempty"`

	// Session to continue. Empty starts a new session.
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse represents the HTTP response payload for policy questions.
//
// swagger:model ChatResponse
type ChatResponse struct {
	// The generated answer
	Response string `json:"response"`

	// Source chunks the answer was grounded on
	Sources []rag.Source `json:"sources"`

	// Number of chunks retrieved before filtering
	RetrievedChunks int `json:"retrieved_chunks"`

	// The session this exchange belongs to
	SessionID string `json:"session_id"`
}

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for policy questions.
//
// Ask a question about company policies. The system retrieves relevant policy
// chunks, generates an answer, and records the exchange in the session's
// conversation history.
//
// swagger:route POST /api/chat askPolicyQuestion
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		logger.WarnContext(ctx, "empty query in request")
		h.writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	// Enforce bounds for user-provided k. Zero means "server default".
	if req.K < 0 {
		req.K = 0
	}
	if req.K > maxUserK {
		req.K = maxUserK
	}

	// Resolve or create the session
	var session *storage.Session
	var err error
	if req.SessionID != "" {
		session, err = h.sessions.Get(ctx, req.SessionID)
		if errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "unknown session", "session_id", req.SessionID)
			h.writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to load session", "session_id", req.SessionID, "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to load session")
			return
		}
	} else {
		session, err = h.sessions.Create(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to create session")
			return
		}
	}

	history, err := h.recentHistory(ctx, session.ID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load conversation history", "session_id", session.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load conversation history")
		return
	}

	answer, err := h.engine.Ask(ctx, rag.AskRequest{
		Question: req.Query,
		K:        req.K,
		History:  history,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "session_id", session.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to process query")
		return
	}

	// Record the exchange. A persistence failure should not lose the answer
	// the user is waiting for.
	if err := h.messages.Append(ctx, session.ID, "user", req.Query); err != nil {
		logger.WarnContext(ctx, "failed to store user message", "session_id", session.ID, "error", err)
	}
	if err := h.messages.Append(ctx, session.ID, "assistant", answer.Answer); err != nil {
		logger.WarnContext(ctx, "failed to store assistant message", "session_id", session.ID, "error", err)
	}
	if err := h.sessions.Touch(ctx, session.ID); err != nil {
		logger.WarnContext(ctx, "failed to touch session", "session_id", session.ID, "error", err)
	}

	resp := ChatResponse{
		Response:        answer.Answer,
		Sources:         answer.Sources,
		RetrievedChunks: answer.RetrievedChunks,
		SessionID:       session.ID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode chat response", "error", err)
	}
}

// recentHistory loads the session's recent messages as conversation turns.
func (h *ChatHandler) recentHistory(ctx context.Context, sessionID string) ([]rag.ConversationTurn, error) {
	msgs, err := h.messages.Recent(ctx, sessionID, historyTurns)
	if err != nil {
		return nil, err
	}

	var turns []rag.ConversationTurn
	for _, msg := range msgs {
		turns = append(turns, rag.ConversationTurn{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	return turns, nil
}

func (h *ChatHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
