// Package config reads the client configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// APIBaseURL is the document-QA backend's base address.
	APIBaseURL string
	// TopK is the number of passages requested per retrieval. Affects recall
	// only.
	TopK int
	// HTTPTimeout bounds every remote call.
	HTTPTimeout time.Duration
	// LogFile receives the rotated JSON log.
	LogFile string
	// Debug lowers the console log level to debug.
	Debug bool
}

// Load reads configuration, preferring real environment variables over a
// .env file. A missing .env is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("DOCCHAT_API_URL", "http://localhost:8000"),
		TopK:        getEnvInt("DOCCHAT_TOP_K", 5),
		HTTPTimeout: getEnvDuration("DOCCHAT_HTTP_TIMEOUT", 120*time.Second),
		LogFile:     getEnv("DOCCHAT_LOG_FILE", "docchat.log"),
		Debug:       getEnv("DOCCHAT_DEBUG", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
