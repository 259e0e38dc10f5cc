package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	GeminiAPIKey string
	GeminiModel  string

	OllamaHost   string
	CaptionModel string

	// ConverterCmd is the external page-to-image converter invocation.
	// The PDF path and output directory are appended as arguments.
	ConverterCmd   []string
	CaptionWorkers int

	LocalStoreDir string
	AnswerTTLSecs int
}

// Load reads configuration from environment variables with sensible defaults.
// In production, missing datastore or LLM credentials are fatal.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	applyEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	cfg := Config{
		Port:            getEnv("PORT", "5000"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "pdfhelper"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		CaptionModel:    getEnv("CAPTION_MODEL", "qwen2-vl-2b-instruct"),
		ConverterCmd:    strings.Fields(getEnv("CONVERTER_CMD", "python3 scripts/convert_to_images.py")),
		CaptionWorkers:  getEnvInt("CAPTION_WORKERS", 4),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./uploads"),
		AnswerTTLSecs:   getEnvInt("ANSWER_TTL_SECONDS", 3600),
	}

	if env == "production" {
		if cfg.MongoURI == "" {
			log.Fatalf("MONGODB_URI is required in production")
		}
		if cfg.GeminiAPIKey == "" {
			log.Fatalf("GEMINI_API_KEY is required in production")
		}
		if strings.TrimSpace(os.Getenv("JWT_SECRET")) == "" {
			log.Fatalf("JWT_SECRET is required in production")
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
