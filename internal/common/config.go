package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Fetch  FetchConfig
	OCR    OCRConfig
	Vision VisionConfig
	LLM    LLMConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// FetchConfig holds document download configuration
type FetchConfig struct {
	Timeout   time.Duration
	UserAgent string
	Referer   string
}

// OCRConfig holds rasterization and local OCR configuration
type OCRConfig struct {
	Pdftoppm      string
	Tesseract     string
	TesseractLang string
	DPI           int
	PSM           int
	MaxPages      int
	PageTimeout   time.Duration
	Workers       int
}

// VisionConfig holds the remote vision OCR API configuration
type VisionConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// LLMConfig holds the generative extraction API configuration
type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Fetch: FetchConfig{
			Timeout:   getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
			UserAgent: getEnv("FETCH_USER_AGENT", ""),
			Referer:   getEnv("FETCH_REFERER", ""),
		},
		OCR: OCRConfig{
			Pdftoppm:      getEnv("PDFTOPPM", "pdftoppm"),
			Tesseract:     getEnv("TESSERACT", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			PSM:           getEnvAsInt("OCR_PSM", 6),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			PageTimeout:   getEnvAsDuration("OCR_PAGE_TIMEOUT", 30*time.Second),
			Workers:       getEnvAsInt("OCR_WORKERS", 4),
		},
		Vision: VisionConfig{
			Endpoint: getEnv("VISION_ENDPOINT", "https://vision.googleapis.com"),
			APIKey:   getEnv("VISION_API_KEY", ""),
			Timeout:  getEnvAsDuration("VISION_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
