package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	DBPath             string
	DocsDir            string
	APIPort            string
	LogLevel           slog.Level
	LogFormat          string

	// Retrieval pipeline knobs.
	BaseK               int
	CompanyName         string
	HolidayCalendarYear string
	OfficeLocation      string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the current directory or any parent up to the project root
// is loaded first; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:          getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:        getEnv("LLM_MODEL", "gemini-2.5-flash-lite"),
		LLMAPIKey:           getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:    getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName:  getEnv("EMBEDDING_MODEL_NAME", "gemini-embedding-001"),
		QdrantURL:           getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:    getEnv("QDRANT_COLLECTION", "hr_docs"),
		DBPath:              getEnv("DB_PATH", "./data/policyqa.db"),
		DocsDir:             getEnv("DOCS_DIR", ""),
		APIPort:             getEnv("API_PORT", "9000"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		CompanyName:         getEnv("COMPANY_NAME", ""),
		HolidayCalendarYear: getEnv("HOLIDAY_CALENDAR_YEAR", "2025"),
		OfficeLocation:      getEnv("OFFICE_LOCATION", "Bangalore"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// The vector size must match the embedding model's output dimension; the
	// Qdrant collection is created with it and cannot change afterwards.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	baseKStr := getEnv("RETRIEVAL_BASE_K", "4")
	baseK, err := strconv.Atoi(baseKStr)
	if err != nil || baseK <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_BASE_K must be a positive integer, got %q", baseKStr)
	}
	cfg.BaseK = baseK

	if cfg.DocsDir == "" {
		return nil, fmt.Errorf("DOCS_DIR is required")
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
