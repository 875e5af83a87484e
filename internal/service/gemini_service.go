package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"google.golang.org/genai"
)

const (
	geminiRateLimitedMessage = "Limite de requisições excedido. Tente novamente."
	geminiNoCreditsMessage   = "Créditos insuficientes para a API Gemini."
	geminiFailedMessage      = "Erro ao processar com IA Gemini"
	geminiEmptyMessage       = "Resposta vazia da IA"
	geminiParseMessage       = "Erro ao interpretar a resposta da IA Gemini"
)

var (
	errGeminiKeyMissing    = errors.New("GEMINI_API_KEY não configurada")
	errGeminiEmptyResponse = errors.New("empty response")
)

type GeminiServiceInterface interface {
	Analyzer
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// geminiModels is the subset of *genai.Models the service needs.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type GeminiService struct {
	models         geminiModels
	log            *logger.Logger
	Model          string
	EmbeddingModel string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration
}

// NewGeminiService builds the Gemini client. A missing API key is not fatal:
// every call then fails with errGeminiKeyMissing.
func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *logger.Logger) (*GeminiService, error) {
	s := newGeminiService(nil, cfg, log)
	if cfg.APIKey == "" {
		s.log.Warn("GEMINI_API_KEY not set, Gemini analysis disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	s.models = client.Models
	return s, nil
}

func newGeminiService(models geminiModels, cfg *config.GeminiConfig, log *logger.Logger) *GeminiService {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &GeminiService{
		models:         models,
		log:            log.With("service", "GeminiService"),
		Model:          cfg.Model,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxRetries:     retries,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
		RequestTimeout: timeout,
	}
}

// Analyze sends system and user prompt as a single text part, the way the
// Gemini REST generateContent endpoint expects a one-shot prompt.
func (s *GeminiService) Analyze(ctx context.Context, kind model.AssessmentType, content string, reference string) (*Analysis, error) {
	if s.models == nil {
		return nil, errGeminiKeyMissing
	}
	system, user, err := BuildPrompts(kind, content, reference)
	if err != nil {
		return nil, err
	}

	result, err := s.GenerateContent(ctx, system+"\n\n"+user)
	if err != nil {
		return nil, s.translateError(err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, &UpstreamError{Status: 500, Message: geminiEmptyMessage}
	}
	analysis, err := ParseAnalysis(text)
	if err != nil {
		s.log.Error("Failed to parse Gemini response", "text", text, "error", err)
		return nil, &UpstreamError{Status: 500, Message: geminiParseMessage, Err: err}
	}
	return analysis, nil
}

func (s *GeminiService) translateError(err error) error {
	if errors.Is(err, errGeminiKeyMissing) {
		return err
	}
	if errors.Is(err, errGeminiEmptyResponse) {
		return &UpstreamError{Status: 500, Message: geminiEmptyMessage, Err: err}
	}
	code, _ := apiErrorCode(err)
	switch code {
	case 429:
		return &UpstreamError{Status: 429, Message: geminiRateLimitedMessage, Err: err}
	case 402:
		return &UpstreamError{Status: 402, Message: geminiNoCreditsMessage, Err: err}
	}
	s.log.Error("Gemini API error", "status", code, "error", err)
	return &UpstreamError{Status: 500, Message: geminiFailedMessage, Err: err}
}

func (s *GeminiService) GenerateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if s.models == nil {
		return nil, errGeminiKeyMissing
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("Retrying GenerateContent", "attempt", attempt, "max_retries", s.MaxRetries, "delay", delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt), genConfig)
		if err == nil {
			if err := validateGenerateResponse(result); err != nil {
				return nil, fmt.Errorf("%w: %v", errGeminiEmptyResponse, err)
			}
			return result, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, fmt.Errorf("generate content failed: %w", err)
		}
		s.log.Warn("Retryable Gemini error", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateContent: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if s.models == nil {
		return nil, errGeminiKeyMissing
	}
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}
	if len(trimmedText) > 10000 {
		s.log.Warn("Embedding input truncated", "length", len(trimmedText))
		trimmedText = truncateUTF8(trimmedText, 10000)
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.calculateBackoff(attempt)):
			case <-timeoutCtx.Done():
				return nil, fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.models.EmbedContent(timeoutCtx, s.EmbeddingModel, content, nil)
		if err == nil {
			embeddings, err := validateEmbeddingResponse(result)
			if err != nil {
				return nil, fmt.Errorf("invalid embedding response: %w", err)
			}
			return embeddings, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, fmt.Errorf("generate embedding failed: %w", err)
		}
		s.log.Warn("Retryable Gemini embedding error", "attempt", attempt+1, "error", err)
	}

	return nil, fmt.Errorf("max retries (%d) exceeded for GenerateEmbedding: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

// apiErrorCode extracts the HTTP status from a genai API error.
func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// isRetryableError reports transient failures only. Rate limiting and billing
// errors go straight back to the caller.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := apiErrorCode(err); ok {
		switch code {
		case 500, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embeddings, nil
}

func truncateUTF8(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	cut := maxBytes
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
