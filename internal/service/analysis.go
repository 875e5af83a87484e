package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fadilmartias/nexo-carreira/internal/dto"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/tidwall/gjson"
)

// Analyzer sends assessment content to an LLM and returns its structured verdict.
type Analyzer interface {
	Analyze(ctx context.Context, kind model.AssessmentType, content string, reference string) (*Analysis, error)
}

// Analysis pairs the object returned by the LLM, byte for byte, with its
// normalized form.
type Analysis struct {
	Raw    json.RawMessage
	Result dto.AnalysisResult
}

// UpstreamError is a provider failure already translated for the end user.
type UpstreamError struct {
	Status  int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

var errNotJSONObject = errors.New("AI output is not a JSON object")

// ParseAnalysis validates the LLM text output and extracts the assessment
// fields. Markdown code fences around the object are tolerated.
func ParseAnalysis(text string) (*Analysis, error) {
	cleaned := stripCodeFence(text)
	if !gjson.Valid(cleaned) {
		return nil, errNotJSONObject
	}
	parsed := gjson.Parse(cleaned)
	if !parsed.IsObject() {
		return nil, errNotJSONObject
	}

	result := dto.AnalysisResult{
		Strengths:           stringList(parsed.Get("pontos_fortes")),
		AreasToImprove:      stringList(parsed.Get("pontos_a_melhorar")),
		Recommendations:     stringList(parsed.Get("recomendacoes")),
		Level:               string(model.ParseReadinessLevel(strings.TrimSpace(parsed.Get("nivel").String()))),
		MotivationalMessage: strings.TrimSpace(parsed.Get("mensagem_motivacional").String()),
	}
	result.Score = parseScore(parsed.Get("score"))

	return &Analysis{Raw: json.RawMessage(cleaned), Result: result}, nil
}

// parseScore accepts JSON numbers and numeric strings, rounded and clamped
// to 0..100. Anything else yields nil.
func parseScore(r gjson.Result) *int {
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Num
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil {
			return nil
		}
		f = v
	default:
		return nil
	}
	if math.IsNaN(f) {
		return nil
	}
	f = math.Round(math.Max(0, math.Min(100, f)))
	v := int(f)
	return &v
}

func stringList(r gjson.Result) []string {
	out := []string{}
	if !r.IsArray() {
		if s := strings.TrimSpace(r.String()); r.Type == gjson.String && s != "" {
			out = append(out, s)
		}
		return out
	}
	for _, item := range r.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
