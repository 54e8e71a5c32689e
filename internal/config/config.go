package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// PlaceholderAPIKey is the default used when GEMINI_API_KEY is not set. The
// server refuses to start with it in production.
const PlaceholderAPIKey = "YOUR_GEMINI_API_KEY"

type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", PlaceholderAPIKey),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate rejects configurations that must not reach production, most
// importantly a missing or placeholder Gemini API key.
func (c *Config) Validate() error {
	key := strings.TrimSpace(c.Gemini.APIKey)
	if c.Server.Env == "production" && (key == "" || key == PlaceholderAPIKey) {
		return errors.New("GEMINI_API_KEY must be set to a real key in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
