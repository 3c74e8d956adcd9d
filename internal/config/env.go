package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GeminiAPIKey    string
	GenModel        string
	MaxFileSizeMB   int
	MaxPages        int
	LoadTimeoutMs   int
	ExtractAPIURL   string
	CredentialsPath string
	AllowedOrigins  []string
}

// LoadConfig loads the environment variables and returns config. Nothing is
// strictly required at boot: the API key can also arrive later through the
// setup endpoint.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GenModel:        getEnv("GEN_MODEL", "gemini-2.5-pro"),
		MaxFileSizeMB:   getEnvInt("MAX_FILE_SIZE_MB", 50),
		MaxPages:        getEnvInt("MAX_PAGES", 1000),
		LoadTimeoutMs:   getEnvInt("LOAD_TIMEOUT_MS", 30000),
		ExtractAPIURL:   getEnv("EXTRACT_API_URL", ""),
		CredentialsPath: getEnv("CREDENTIALS_PATH", ""),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
