package service

import (
	"testing"

	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnalysis = `{
  "pontos_fortes": ["Comunicação", "Trabalho em equipe"],
  "pontos_a_melhorar": ["Inglês"],
  "recomendacoes": ["Curso de inglês", "Projeto pessoal"],
  "nivel": "intermediario",
  "score": 72,
  "mensagem_motivacional": "Você está no caminho certo!"
}`

func TestParseAnalysis(t *testing.T) {
	a, err := ParseAnalysis(sampleAnalysis)
	require.NoError(t, err)

	assert.Equal(t, []string{"Comunicação", "Trabalho em equipe"}, a.Result.Strengths)
	assert.Equal(t, []string{"Inglês"}, a.Result.AreasToImprove)
	assert.Equal(t, []string{"Curso de inglês", "Projeto pessoal"}, a.Result.Recommendations)
	assert.Equal(t, "intermediario", a.Result.Level)
	require.NotNil(t, a.Result.Score)
	assert.Equal(t, 72, *a.Result.Score)
	assert.Equal(t, "Você está no caminho certo!", a.Result.MotivationalMessage)
	assert.JSONEq(t, sampleAnalysis, string(a.Raw))
}

func TestParseAnalysisStripsCodeFence(t *testing.T) {
	a, err := ParseAnalysis("```json\n" + sampleAnalysis + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "intermediario", a.Result.Level)
	assert.JSONEq(t, sampleAnalysis, string(a.Raw))
}

func TestParseAnalysisNormalizes(t *testing.T) {
	a, err := ParseAnalysis(`{"nivel":"expert","score":"140","pontos_fortes":"Liderança"}`)
	require.NoError(t, err)

	assert.Equal(t, string(model.ReadinessBeginner), a.Result.Level)
	require.NotNil(t, a.Result.Score)
	assert.Equal(t, 100, *a.Result.Score)
	assert.Equal(t, []string{"Liderança"}, a.Result.Strengths)
	assert.Equal(t, []string{}, a.Result.AreasToImprove)
}

func TestParseAnalysisScoreValues(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{`{"score":72.4}`, intPtr(72)},
		{`{"score":" 64.5 "}`, intPtr(65)},
		{`{"score":-3}`, intPtr(0)},
		{`{"score":1e30}`, intPtr(100)},
		{`{"score":"1e30"}`, intPtr(100)},
		{`{"score":"abc"}`, nil},
		{`{"score":"NaN"}`, nil},
		{`{"score":true}`, nil},
		{`{"score":{}}`, nil},
		{`{"score":[80]}`, nil},
		{`{"score":null}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseAnalysis(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Result.Score)
		})
	}
}

func TestParseAnalysisMissingScore(t *testing.T) {
	a, err := ParseAnalysis(`{"nivel":"pronto"}`)
	require.NoError(t, err)
	assert.Nil(t, a.Result.Score)
}

func TestParseAnalysisRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "not json", `["a","b"]`, `{"nivel":`} {
		_, err := ParseAnalysis(in)
		assert.Error(t, err, in)
	}
}

func TestBuildPrompts(t *testing.T) {
	system, user, err := BuildPrompts(model.AssessmentTypeQuestionnaire, "Experiência Profissional:\nEstágio", "")
	require.NoError(t, err)
	assert.Contains(t, system, "Você é Nexo")
	assert.Contains(t, system, "pontos_fortes")
	assert.Equal(t, "Analise estas respostas do questionário:\n\nExperiência Profissional:\nEstágio", user)

	system, user, err = BuildPrompts(model.AssessmentTypeResume, "Maria Silva", "Trilha: Backend")
	require.NoError(t, err)
	assert.Contains(t, system, "análise de currículos")
	assert.Contains(t, system, "Trilha: Backend")
	assert.Equal(t, "Analise este currículo:\n\nMaria Silva", user)

	_, _, err = BuildPrompts(model.AssessmentType("entrevista"), "x", "")
	assert.Error(t, err)
}

func intPtr(v int) *int { return &v }
