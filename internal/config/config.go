package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Session   SessionConfig
	Ingest    IngestConfig
	Retrieval RetrievalConfig
	Export    ExportConfig
	Events    EventsConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	// Postgres DSN. Leave empty to run on the in-memory collection store.
	Connection string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	EmbeddingDimension   int    // used by the ollama provider; gemini is fixed at 768
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	LLMProvider          string // "gemini" or "ollama"
	LLMModel             string // e.g. "gemini-2.5-flash", "llama3"
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

type RetrievalConfig struct {
	TopK          int
	HistoryWindow int
}

type ExportConfig struct {
	ReportsDir string
}

type EventsConfig struct {
	SessionLifecycleTopic string
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingDimension:   getEnvAsInt("EMBEDDING_DIMENSION", 768),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:             getEnv("LLM_MODEL", "gemini-2.5-flash"),
		},
		Session: SessionConfig{
			TTL:             getEnvAsMinutes("SESSION_TTL_MINUTES", 45),
			CleanupInterval: getEnvAsMinutes("CLEANUP_INTERVAL_MINUTES", 10),
		},
		Ingest: IngestConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 200),
			BatchSize:    getEnvAsInt("EMBED_BATCH_SIZE", 100),
		},
		Retrieval: RetrievalConfig{
			TopK:          getEnvAsInt("RETRIEVAL_TOP_K", 5),
			HistoryWindow: getEnvAsInt("HISTORY_WINDOW", 5),
		},
		Export: ExportConfig{
			ReportsDir: getEnv("REPORTS_DIR", "generated_reports"),
		},
		Events: EventsConfig{
			SessionLifecycleTopic: getEnv("SESSION_LIFECYCLE_TOPIC_NAME", "SESSION_LIFECYCLE"),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMinutes(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Minute
}
