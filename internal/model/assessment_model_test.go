package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReadinessLevel(t *testing.T) {
	tests := []struct {
		in   string
		want ReadinessLevel
	}{
		{"iniciante", ReadinessBeginner},
		{"intermediario", ReadinessIntermediate},
		{"pronto", ReadinessReady},
		{"Pronto", ReadinessBeginner},
		{"", ReadinessBeginner},
		{"avancado", ReadinessBeginner},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReadinessLevel(tt.in))
		})
	}
}

func TestAssessmentTypeValid(t *testing.T) {
	assert.True(t, AssessmentTypeQuestionnaire.Valid())
	assert.True(t, AssessmentTypeResume.Valid())
	assert.False(t, AssessmentType("entrevista").Valid())
}
