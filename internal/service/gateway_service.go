package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	gatewayRateLimitedMessage = "Limite de requisições excedido. Tente novamente em alguns instantes."
	gatewayNoCreditsMessage   = "Créditos insuficientes. Por favor, adicione créditos ao workspace."
	gatewayFailedMessage      = "Erro ao processar com IA"
	gatewayInvalidMessage     = "Resposta inválida da IA"
	gatewayParseMessage       = "Erro ao processar resposta da IA"
)

var errGatewayKeyMissing = errors.New("LOVABLE_API_KEY not configured")

// GatewayService talks to an OpenAI-compatible chat completions endpoint.
type GatewayService struct {
	client *resty.Client
	log    *logger.Logger
	apiKey string
	model  string
}

func NewGatewayService(cfg *config.GatewayConfig, log *logger.Logger) *GatewayService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(90*time.Second).
		SetHeader("Content-Type", "application/json")
	return &GatewayService{
		client: client,
		log:    log.With("service", "GatewayService"),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (s *GatewayService) Analyze(ctx context.Context, kind model.AssessmentType, content string, reference string) (*Analysis, error) {
	if s.apiKey == "" {
		return nil, errGatewayKeyMissing
	}
	system, user, err := BuildPrompts(kind, content, reference)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": user},
			},
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		s.log.Error("AI gateway request failed", "error", err)
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: gatewayFailedMessage, Err: err}
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, &UpstreamError{Status: http.StatusTooManyRequests, Message: gatewayRateLimitedMessage}
	case resp.StatusCode() == http.StatusPaymentRequired:
		return nil, &UpstreamError{Status: http.StatusPaymentRequired, Message: gatewayNoCreditsMessage}
	case resp.IsError():
		s.log.Error("AI gateway error", "status", resp.StatusCode())
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: gatewayFailedMessage}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: gatewayInvalidMessage}
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		s.log.Error("Failed to parse AI gateway response", "error", err)
		return nil, &UpstreamError{Status: http.StatusInternalServerError, Message: gatewayParseMessage, Err: err}
	}
	return analysis, nil
}
