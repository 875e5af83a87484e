package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/nexo-carreira/internal/config"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func newGatewayServer(t *testing.T, status int, body string, inspect func(r *http.Request, payload map[string]any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if inspect != nil {
			inspect(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGatewayAnalyze(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]any
	srv := newGatewayServer(t, http.StatusOK, chatCompletion(sampleAnalysis), func(r *http.Request, payload map[string]any) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotPayload = payload
	})

	s := NewGatewayService(&config.GatewayConfig{APIKey: "key-123", BaseURL: srv.URL + "/v1", Model: "google/gemini-2.5-flash"}, logger.Nop())
	a, err := s.Analyze(context.Background(), model.AssessmentTypeResume, "Maria Silva, estágio em TI", "")
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer key-123", gotAuth)
	assert.Equal(t, "google/gemini-2.5-flash", gotPayload["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, gotPayload["response_format"])
	messages := gotPayload["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "Analise este currículo:\n\nMaria Silva, estágio em TI", messages[1].(map[string]any)["content"])

	assert.Equal(t, []string{"Comunicação", "Trabalho em equipe"}, a.Result.Strengths)
	assert.JSONEq(t, sampleAnalysis, string(a.Raw))
}

func TestGatewayAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"rate limited", http.StatusTooManyRequests, `{}`, 429, gatewayRateLimitedMessage},
		{"no credits", http.StatusPaymentRequired, `{}`, 402, gatewayNoCreditsMessage},
		{"server error", http.StatusBadGateway, `{}`, 500, gatewayFailedMessage},
		{"no choices", http.StatusOK, `{"choices":[]}`, 500, gatewayInvalidMessage},
		{"not json", http.StatusOK, chatCompletion("Olá, aqui está sua análise"), 500, gatewayParseMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGatewayServer(t, tt.status, tt.body, nil)
			s := NewGatewayService(&config.GatewayConfig{APIKey: "k", BaseURL: srv.URL, Model: "m"}, logger.Nop())

			_, err := s.Analyze(context.Background(), model.AssessmentTypeQuestionnaire, "conteúdo qualquer", "")
			var upErr *UpstreamError
			require.True(t, errors.As(err, &upErr))
			assert.Equal(t, tt.wantStatus, upErr.Status)
			assert.Equal(t, tt.wantMsg, upErr.Message)
		})
	}
}

func TestGatewayMissingKey(t *testing.T) {
	s := NewGatewayService(&config.GatewayConfig{BaseURL: "http://127.0.0.1:1"}, logger.Nop())
	_, err := s.Analyze(context.Background(), model.AssessmentTypeQuestionnaire, "conteúdo qualquer", "")
	assert.EqualError(t, err, "LOVABLE_API_KEY not configured")
}
