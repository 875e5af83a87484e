package dto

// AnalyzeRequest is the body accepted by the assessment function endpoints.
type AnalyzeRequest struct {
	Type    string `json:"type" validate:"required,oneof=questionario curriculo"`
	Content string `json:"content" validate:"required,min=10,max=50000"`
}

// GeminiAnalyzeRequest only accepts questionnaire content.
type GeminiAnalyzeRequest struct {
	Type    string `json:"type" validate:"required,oneof=questionario"`
	Content string `json:"content" validate:"required,min=10,max=50000"`
}

// AnalysisResult is the normalized view of the JSON object returned by the LLM.
type AnalysisResult struct {
	Strengths           []string `json:"pontos_fortes"`
	AreasToImprove      []string `json:"pontos_a_melhorar"`
	Recommendations     []string `json:"recomendacoes"`
	Level               string   `json:"nivel"`
	Score               *int     `json:"score"`
	MotivationalMessage string   `json:"mensagem_motivacional"`
}
