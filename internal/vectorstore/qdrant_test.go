package vectorstore

import (
	"context"
	"net/url"
	"reflect"
	"strconv"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

// TestNewQdrantStore_URLParsing tests URL parsing logic without creating a real client.
// This avoids connection warnings in unit tests.
func TestNewQdrantStore_URLParsing(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{
			name:     "valid URL",
			urlStr:   "http://localhost:6333",
			wantErr:  false,
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "URL with custom port",
			urlStr:   "http://localhost:9000",
			wantErr:  false,
			wantHost: "localhost",
			wantPort: 9001,
		},
		{
			name:    "invalid URL",
			urlStr:  "://invalid",
			wantErr: true,
		},
		{
			name:     "URL without port",
			urlStr:   "http://localhost",
			wantErr:  false,
			wantHost: "localhost",
			wantPort: 6334, // Default
		},
		{
			name:     "URL without hostname",
			urlStr:   "http://:6333",
			wantErr:  false,
			wantHost: "localhost", // Defaults to localhost
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := url.Parse(tt.urlStr)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected URL parsing to fail for invalid URL")
				}
				return
			}

			if err != nil {
				t.Fatalf("Failed to parse URL: %v", err)
			}

			// Test the URL parsing logic that NewQdrantStore uses
			host := parsedURL.Hostname()
			if host == "" {
				host = "localhost"
			}

			port := 6334 // Default gRPC port
			if parsedURL.Port() != "" {
				httpPort, err := strconv.Atoi(parsedURL.Port())
				if err == nil {
					port = httpPort + 1
				}
			}

			if host != tt.wantHost {
				t.Errorf("Host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("Port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

// TestNewQdrantStore_InvalidURL tests that invalid URLs return errors.
func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore("://invalid")
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestQdrantStore_Upsert_EmptyPoints(t *testing.T) {
	// Upsert should return early before touching the client.
	store := &QdrantStore{}

	err := store.Upsert(context.Background(), "test-collection", []Point{})
	if err != nil {
		t.Errorf("Upsert() with empty points should return early without error, got: %v", err)
	}
}

func TestQdrantStore_DeleteBySource_EmptySource(t *testing.T) {
	// An empty source file would match nothing and indicates a caller bug.
	store := &QdrantStore{}

	err := store.DeleteBySource(context.Background(), "test-collection", "")
	if err == nil {
		t.Error("DeleteBySource() with empty source file should return error")
	}
}

func TestQdrantStore_Search_InvalidK(t *testing.T) {
	store := &QdrantStore{}

	_, err := store.Search(context.Background(), "test-collection", []float32{0.1, 0.2}, 0)
	if err == nil {
		t.Error("Search() with k=0 should return error")
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{
			name:  "string value",
			value: qdrant.NewValueString("probation-policy.pdf"),
			want:  "probation-policy.pdf",
		},
		{
			name:  "integer value",
			value: qdrant.NewValueInt(7),
			want:  int64(7),
		},
		{
			name:  "double value",
			value: qdrant.NewValueDouble(0.5),
			want:  0.5,
		},
		{
			name:  "bool value",
			value: qdrant.NewValueBool(true),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertValue(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"source_file": qdrant.NewValueString("holiday-calendar.pdf"),
		"page_no":     qdrant.NewValueInt(2),
		"chunk_index": qdrant.NewValueInt(5),
		"nil_value":   nil,
	}

	got := convertPayloadToMap(payload)

	want := map[string]any{
		"source_file": "holiday-calendar.pdf",
		"page_no":     int64(2),
		"chunk_index": int64(5),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("convertPayloadToMap() = %v, want %v", got, want)
	}
}
