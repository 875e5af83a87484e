package config

import (
	"os"
	"sync"
)

// GatewayConfig points at an OpenAI-compatible chat completions gateway.
type GatewayConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

var (
	gatewayConfig *GatewayConfig
	gatewayOnce   sync.Once
)

func LoadGatewayConfig() *GatewayConfig {
	gatewayOnce.Do(func() {
		gatewayConfig = &GatewayConfig{
			APIKey:  os.Getenv("LOVABLE_API_KEY"),
			BaseURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
			Model:   getEnv("AI_GATEWAY_MODEL", "google/gemini-2.5-flash"),
		}
	})
	return gatewayConfig
}
