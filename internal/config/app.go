package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	BaseURL      string
	AllowOrigins string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
			log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
		}
		appConfig = &AppConfig{
			Name:         getEnv("APP_NAME", "Nexo Carreira API"),
			Env:          env,
			Port:         getEnv("APP_PORT", ":8080"),
			BaseURL:      os.Getenv("APP_URL"),
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		}
	})
	return appConfig
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
