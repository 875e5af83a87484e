package service

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/nexo-carreira/internal/model"
)

const questionnaireSystemPrompt = `Você é Nexo, um mentor de carreira especializado em preparar universitários e recém-formados para o primeiro emprego. Sua comunicação é formal mas levemente descontraída e sempre motivacional, reforçando a autoconfiança.

Analise as respostas do questionário e retorne apenas um JSON no seguinte formato:
{
  "pontos_fortes": ["<competência1>", "<competência2>", ...],
  "pontos_a_melhorar": ["<área1>", "<área2>", ...],
  "recomendacoes": ["<sugestão1>", "<sugestão2>", ...],
  "nivel": "iniciante" | "intermediario" | "pronto",
  "score": <0-100>,
  "mensagem_motivacional": "<mensagem de encorajamento>"
}

Liste de 3 a 5 itens em cada array, considerando competências técnicas e comportamentais. O score representa o nível de prontidão para o mercado.
Seja específico, construtivo e sempre termine com reforço positivo.`

const resumeSystemPrompt = `Você é Nexo, um mentor de carreira especializado em análise de currículos para primeiro emprego. Seja formal mas acolhedor.

Analise o currículo e retorne apenas um JSON no seguinte formato:
{
  "pontos_fortes": ["<elemento positivo do currículo>", ...],
  "pontos_a_melhorar": ["<sugestão de melhoria>", ...],
  "recomendacoes": ["<ação prática para fortalecer o currículo>", ...],
  "nivel": "iniciante" | "intermediario" | "pronto",
  "score": <0-100>,
  "mensagem_motivacional": "<feedback personalizado>"
}

Foque em: formatação, experiências, habilidades técnicas, soft skills, educação.`

// BuildPrompts returns the system and user prompts for the given assessment
// type. reference, when not empty, is appended to the system prompt as
// background the model should weigh the answers against.
func BuildPrompts(kind model.AssessmentType, content, reference string) (string, string, error) {
	var system, user string
	switch kind {
	case model.AssessmentTypeQuestionnaire:
		system = questionnaireSystemPrompt
		user = "Analise estas respostas do questionário:\n\n" + content
	case model.AssessmentTypeResume:
		system = resumeSystemPrompt
		user = "Analise este currículo:\n\n" + content
	default:
		return "", "", fmt.Errorf("Tipo de análise inválido")
	}

	if ref := strings.TrimSpace(reference); ref != "" {
		system += "\n\nUse as trilhas de carreira abaixo como base de requisitos para o objetivo do candidato:\n\n" + ref
	}
	return system, user, nil
}
