package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthUser is the identity behind a verified access token.
type AuthUser struct {
	ID    uuid.UUID
	Email string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*AuthUser, error)
}

// NewTokenVerifier verifies tokens locally when the project's JWT secret is
// known and otherwise asks the Supabase auth API who the token belongs to.
func NewTokenVerifier(cfg *config.SupabaseConfig, log *logger.Logger) TokenVerifier {
	if cfg.JWTSecret != "" {
		return NewJWTVerifier(cfg.JWTSecret)
	}
	return NewSupabaseVerifier(cfg, log)
}

type supabaseClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(ctx context.Context, token string) (*AuthUser, error) {
	claims := &supabaseClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role == "anon" {
		return nil, fmt.Errorf("%w: anonymous token", ErrInvalidToken)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid subject", ErrInvalidToken)
	}
	return &AuthUser{ID: id, Email: claims.Email}, nil
}

type SupabaseVerifier struct {
	client  *resty.Client
	anonKey string
	log     *logger.Logger
}

func NewSupabaseVerifier(cfg *config.SupabaseConfig, log *logger.Logger) *SupabaseVerifier {
	return &SupabaseVerifier{
		client:  resty.New().SetBaseURL(cfg.URL).SetTimeout(10 * time.Second),
		anonKey: cfg.AnonKey,
		log:     log.With("service", "SupabaseVerifier"),
	}
}

func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*AuthUser, error) {
	if v.client.BaseURL == "" || v.anonKey == "" {
		return nil, errors.New("SUPABASE_URL e SUPABASE_ANON_KEY devem estar configurados")
	}
	resp, err := v.client.R().
		SetContext(ctx).
		SetHeader("apikey", v.anonKey).
		SetAuthToken(token).
		Get("/auth/v1/user")
	if err != nil {
		v.log.Warn("Supabase auth request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: auth api returned %d", ErrInvalidToken, resp.StatusCode())
	}

	body := resp.String()
	id, err := uuid.Parse(gjson.Get(body, "id").String())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrInvalidToken)
	}
	return &AuthUser{ID: id, Email: gjson.Get(body, "email").String()}, nil
}
