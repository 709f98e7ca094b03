package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Embedding EmbeddingConfig
	Search    SearchConfig
	Keys      APIKeys
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type EmbeddingConfig struct {
	ServiceURL      string
	FallbackToLocal bool
	TimeoutSeconds  int
	CacheCapacity   int
	OllamaBaseURL   string
	OllamaModel     string
}

type SearchConfig struct {
	DefaultState    string
	DefaultRadius   float64
	MaxRecommended  int
	MaxAdditional   int
	MaxContext      int
	WeightOverrides map[string]float64
	TimeWindowDays  int
}

type APIKeys struct {
	RefreshEventTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Embedding: EmbeddingConfig{
			ServiceURL:      getEnv("EMBEDDING_SERVICE_URL", ""),
			FallbackToLocal: getEnvAsBool("EMBEDDING_FALLBACK_LOCAL", true),
			TimeoutSeconds:  getEnvAsInt("EMBEDDING_TIMEOUT_SECONDS", 10),
			CacheCapacity:   getEnvAsInt("EMBEDDING_CACHE_CAPACITY", 1000),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
		},
		Search: SearchConfig{
			DefaultState:    getEnv("DEFAULT_STATE", "MA"),
			DefaultRadius:   getEnvAsFloat("DEFAULT_RADIUS_MILES", 10.0),
			MaxRecommended:  getEnvAsInt("MAX_RECOMMENDED_EVENTS", 5),
			MaxAdditional:   getEnvAsInt("MAX_ADDITIONAL_EVENTS", 5),
			MaxContext:      getEnvAsInt("MAX_CONTEXT_EVENTS", 10),
			WeightOverrides: getEnvAsFloatMap("RANKING_WEIGHTS"),
			TimeWindowDays:  getEnvAsInt("TIME_WINDOW_DAYS", 30),
		},
		Keys: APIKeys{
			RefreshEventTopic: getEnv("REFRESH_EVENT_TOPIC_NAME", "REFRESH_EVENT_EMBEDDING"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

// getEnvAsFloatMap parses a JSON object of factor weights, e.g.
// {"semantic":0.5,"time":0.3}. Invalid JSON means no overrides.
func getEnvAsFloatMap(key string) map[string]float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return nil
	}
	var parsed map[string]float64
	if err := json.Unmarshal([]byte(strValue), &parsed); err != nil {
		log.Printf("Note: ignoring invalid %s value: %v", key, err)
		return nil
	}
	return parsed
}
