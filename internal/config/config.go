package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// CORS
	AllowedOrigins []string

	// Gemini AI
	GeminiAPIKey         string
	GeminiConcurrentReqs int

	// Google Workspace (Forms + Docs)
	GoogleCredentialsFile string

	// Transcript download
	YtDlpPath    string
	SubtitlesDir string

	// Rate limiting
	GenerationRateLimit int
}

// Default origins match the local frontend and the browser extension host.
var defaultOrigins = []string{"http://localhost:3000", "http://localhost:19222"}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		AllowedOrigins:        parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiConcurrentReqs:  getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./service_account_key.json"),
		YtDlpPath:             getEnvOrDefault("YTDLP_PATH", "yt-dlp"),
		SubtitlesDir:          getEnvOrDefault("SUBTITLES_DIR", "./subtitles"),
		GenerationRateLimit:   getEnvAsIntOrDefault("GENERATION_RATE_LIMIT", 30),
	}

	return cfg
}

func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultOrigins
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return defaultOrigins
	}
	return origins
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
