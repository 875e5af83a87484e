package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("NEXO_TEST_INT", "7")
	t.Setenv("NEXO_TEST_BAD_INT", "seven")
	t.Setenv("NEXO_TEST_BOOL", "true")
	t.Setenv("NEXO_TEST_DURATION", "15s")
	t.Setenv("NEXO_TEST_BLANK", "   ")

	assert.Equal(t, 7, getEnvInt("NEXO_TEST_INT", 2))
	assert.Equal(t, 2, getEnvInt("NEXO_TEST_BAD_INT", 2))
	assert.True(t, getEnvBool("NEXO_TEST_BOOL", false))
	assert.Equal(t, 15*time.Second, getEnvDuration("NEXO_TEST_DURATION", time.Second))
	assert.Equal(t, "fallback", getEnv("NEXO_TEST_BLANK", "fallback"))
}

func TestDBConfigDSN(t *testing.T) {
	c := &DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "nexo",
		Password: "secret",
		Name:     "nexo",
		SSLMode:  "disable",
		TimeZone: "America/Sao_Paulo",
	}
	assert.Equal(t,
		"host=localhost user=nexo password=secret dbname=nexo port=5432 sslmode=disable TimeZone=America/Sao_Paulo",
		c.DSN())
}
