package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTVerifier(t *testing.T) {
	userID := uuid.New()
	v := NewJWTVerifier(testSecret)

	valid := signToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "ana@example.com",
		"role":  "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	user, err := v.Verify(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	invalid := map[string]string{
		"expired": signToken(t, testSecret, jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(-time.Minute).Unix()}),
		"no exp":  signToken(t, testSecret, jwt.MapClaims{"sub": userID.String()}),
		"secret":  signToken(t, "another-secret-another-secret-another", jwt.MapClaims{"sub": userID.String(), "exp": time.Now().Add(time.Hour).Unix()}),
		"anon":    signToken(t, testSecret, jwt.MapClaims{"role": "anon", "exp": time.Now().Add(time.Hour).Unix()}),
		"subject": signToken(t, testSecret, jwt.MapClaims{"sub": "not-a-uuid", "exp": time.Now().Add(time.Hour).Unix()}),
		"garbage": "abc.def.ghi",
	}
	for name, token := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestSupabaseVerifier(t *testing.T) {
	userID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Header.Get("apikey") != "anon-key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + userID.String() + `","email":"ana@example.com","aud":"authenticated"}`))
	}))
	defer srv.Close()

	v := NewTokenVerifier(&config.SupabaseConfig{URL: srv.URL, AnonKey: "anon-key"}, logger.Nop())
	require.IsType(t, &SupabaseVerifier{}, v)

	user, err := v.Verify(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = v.Verify(context.Background(), "bad-token")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestSupabaseVerifierRequiresConfig(t *testing.T) {
	v := NewSupabaseVerifier(&config.SupabaseConfig{}, logger.Nop())
	_, err := v.Verify(context.Background(), "token")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidToken))
}

func TestNewTokenVerifierPrefersLocalJWT(t *testing.T) {
	v := NewTokenVerifier(&config.SupabaseConfig{URL: "http://localhost", JWTSecret: testSecret}, logger.Nop())
	assert.IsType(t, &JWTVerifier{}, v)
}
