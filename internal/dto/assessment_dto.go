package dto

import (
	"encoding/json"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/google/uuid"
)

type AssessmentDTO struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	ReadinessLevel  string    `json:"readiness_level"`
	Score           *int      `json:"score"`
	Strengths       []string  `json:"strengths"`
	AreasToImprove  []string  `json:"areas_to_improve"`
	Recommendations []string  `json:"recommendations"`
	RawData         any       `json:"raw_data,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type SubmitResultDTO struct {
	Assessment          AssessmentDTO `json:"assessment"`
	MotivationalMessage string        `json:"mensagem_motivacional"`
}

type OverviewDTO struct {
	TotalAssessments int             `json:"total_assessments"`
	LastAssessmentAt *time.Time      `json:"last_assessment_at"`
	LatestLevel      string          `json:"latest_readiness_level,omitempty"`
	AverageScore     *float64        `json:"average_score"`
	Recent           []AssessmentDTO `json:"recent"`
}

func NewAssessmentDTO(a *model.Assessment) AssessmentDTO {
	out := AssessmentDTO{
		ID:              a.ID,
		Type:            string(a.Type),
		ReadinessLevel:  string(a.ReadinessLevel),
		Score:           a.Score,
		Strengths:       nonNil(a.Strengths),
		AreasToImprove:  nonNil(a.AreasToImprove),
		Recommendations: nonNil(a.Recommendations),
		CreatedAt:       a.CreatedAt,
	}
	if len(a.RawData) > 0 {
		out.RawData = json.RawMessage(a.RawData)
	}
	return out
}

func NewAssessmentDTOs(items []model.Assessment) []AssessmentDTO {
	out := make([]AssessmentDTO, 0, len(items))
	for i := range items {
		out = append(out, NewAssessmentDTO(&items[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
