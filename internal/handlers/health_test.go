package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	storemocks "policyqa/internal/vectorstore/mocks"
)

// stubPinger implements Pinger for tests.
type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockVectorStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(nil)

	handler := NewHealthHandler(store, &stubPinger{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.Checks["vector_store"] != "ok" || resp.Checks["llm"] != "ok" {
		t.Errorf("Checks = %v", resp.Checks)
	}
}

func TestHealthHandler_VectorStoreDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockVectorStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	handler := NewHealthHandler(store, &stubPinger{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("Status = %q, want unhealthy", resp.Status)
	}
	if len(resp.Issues) == 0 {
		t.Error("Issues should be populated when unhealthy")
	}
}

func TestHealthHandler_LLMDownDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockVectorStore(ctrl)
	store.EXPECT().Ping(gomock.Any()).Return(nil)

	handler := NewHealthHandler(store, &stubPinger{err: errors.New("timeout")})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", resp.Status)
	}
	if resp.Checks["llm"] != "error" {
		t.Errorf("llm check = %q, want error", resp.Checks["llm"])
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storemocks.NewMockVectorStore(ctrl)

	handler := NewHealthHandler(store, &stubPinger{})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}
