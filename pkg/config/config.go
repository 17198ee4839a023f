package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	OpenAIAPIKey string
	ChatModel    string
	WhisperModel string

	AppEnv       string
	IsProduction bool

	Port string

	// runtime tunables
	TranscribeMaxRetries   int
	RateLimitWindowSeconds int
	RateLimitCapacity      int
	EvalCacheTTLSeconds    int
	EvalCacheMaxItems      int

	// file locations
	PromptsFile   string
	PreguntasFile string
	UploadsDir    string
	DatabaseFile  string
)

// loadAppEnv loads .env only outside production; in production the host
// environment is the single source of truth.
func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")
	if AppEnv == "production" {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
}

func init() {
	loadAppEnv()

	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	ChatModel = os.Getenv("OPENAI_CHAT_MODEL")
	WhisperModel = os.Getenv("OPENAI_WHISPER_MODEL")

	AppEnv = os.Getenv("APP_ENV")
	IsProduction = AppEnv == "production"

	if ChatModel == "" {
		ChatModel = "gpt-4o"
	}
	if WhisperModel == "" {
		WhisperModel = "whisper-1"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "3000"
	}

	TranscribeMaxRetries = atoiOr(os.Getenv("TRANSCRIBE_MAX_RETRIES"), 3)
	RateLimitWindowSeconds = atoiOr(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), 10)
	RateLimitCapacity = atoiOr(os.Getenv("RATE_LIMIT_CAPACITY"), 5)
	EvalCacheTTLSeconds = atoiOr(os.Getenv("EVAL_CACHE_TTL_SECONDS"), 600)
	EvalCacheMaxItems = atoiOr(os.Getenv("EVAL_CACHE_MAX_ITEMS"), 500)

	PromptsFile = envOr("PROMPTS_FILE", "prompts.json")
	PreguntasFile = envOr("PREGUNTAS_FILE", "preguntas.json")
	UploadsDir = envOr("UPLOADS_DIR", "uploads")
	DatabaseFile = envOr("DATABASE_FILE", "database.sqlite")

	if IsProduction && OpenAIAPIKey == "" {
		log.Fatal("OPENAI_API_KEY must be set in production")
	}

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] OpenAIAPIKeyPresent=%v ChatModel=%s WhisperModel=%s",
		OpenAIAPIKey != "", ChatModel, WhisperModel)
	log.Printf("[config] RateLimit window=%ds capacity=%d evalCacheTTL=%ds evalCacheMax=%d retries=%d",
		RateLimitWindowSeconds, RateLimitCapacity, EvalCacheTTLSeconds, EvalCacheMaxItems, TranscribeMaxRetries)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
