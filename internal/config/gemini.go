package config

import (
	"os"
	"sync"
	"time"
)

type GeminiConfig struct {
	APIKey              string
	Model               string
	EmbeddingModel      string
	MaxRetries          int
	RequestTimeout      time.Duration
	CareerTracksEnabled bool
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = &GeminiConfig{
			APIKey:              os.Getenv("GEMINI_API_KEY"),
			Model:               getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			EmbeddingModel:      getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
			MaxRetries:          getEnvInt("AI_MAX_RETRIES", 0),
			RequestTimeout:      getEnvDuration("AI_REQUEST_TIMEOUT", 90*time.Second),
			CareerTracksEnabled: getEnvBool("CAREER_TRACKS_ENABLED", false),
		}
	})
	return geminiConfig
}
