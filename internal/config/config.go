package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini     string
	OpenAI           string
	Jina             string
	IndexRecipeTopic string // Embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "qwen2.5", "gpt-4o-mini"
	LLMRatePerSecond  int
	LLMBurst          int
}

type ChatConfig struct {
	RetrievalTopK     int
	OverfetchFactor   int
	SimilarityCutoff  float64
	RerankBatchSize   int
	HistoryWindow     int
	SessionTTLMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:           getEnv("OPENAI_API_KEY", ""),
			Jina:             getEnv("JINA_API_KEY", ""),
			IndexRecipeTopic: getEnv("INDEX_RECIPE_TOPIC_NAME", "INDEX_RECIPE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMRatePerSecond:  getEnvAsInt("LLM_RATE_PER_SECOND", 5),
			LLMBurst:          getEnvAsInt("LLM_BURST", 10),
		},
		Chat: ChatConfig{
			RetrievalTopK:     getEnvAsInt("CHAT_RETRIEVAL_TOP_K", 5),
			OverfetchFactor:   getEnvAsInt("CHAT_OVERFETCH_FACTOR", 3),
			SimilarityCutoff:  getEnvAsFloat("CHAT_SIMILARITY_CUTOFF", 0.35),
			RerankBatchSize:   getEnvAsInt("CHAT_RERANK_BATCH_SIZE", 20),
			HistoryWindow:     getEnvAsInt("CHAT_HISTORY_WINDOW", 10),
			SessionTTLMinutes: getEnvAsInt("CHAT_SESSION_TTL_MINUTES", 60),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
