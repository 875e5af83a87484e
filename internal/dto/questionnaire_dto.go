package dto

type Question struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Question string `json:"question"`
}

// Questions is the fixed questionnaire, in the order answers are sent to the AI.
var Questions = []Question{
	{
		ID:       "experiencia",
		Label:    "Experiência Profissional",
		Question: "Descreva sua experiência profissional, estágios ou trabalhos voluntários (se tiver):",
	},
	{
		ID:       "habilidades_tecnicas",
		Label:    "Habilidades Técnicas",
		Question: "Quais são suas principais habilidades técnicas? (ferramentas, softwares, idiomas)",
	},
	{
		ID:       "soft_skills",
		Label:    "Competências Comportamentais",
		Question: "Como você descreveria suas principais competências comportamentais?",
	},
	{
		ID:       "desafios",
		Label:    "Desafios e Aprendizados",
		Question: "Conte sobre um desafio que você enfrentou e o que aprendeu com ele:",
	},
	{
		ID:       "objetivos",
		Label:    "Objetivos de Carreira",
		Question: "Quais são seus objetivos profissionais para os próximos 2 anos?",
	},
}

// ObjectiveQuestionID identifies the answer used to look up career tracks.
const ObjectiveQuestionID = "objetivos"

type QuestionnaireRequest struct {
	Answers map[string]string `json:"answers"`
}
