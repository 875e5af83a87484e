package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssessmentType string

const (
	AssessmentTypeQuestionnaire AssessmentType = "questionario"
	AssessmentTypeResume        AssessmentType = "curriculo"
)

func (t AssessmentType) Valid() bool {
	return t == AssessmentTypeQuestionnaire || t == AssessmentTypeResume
}

type ReadinessLevel string

const (
	ReadinessBeginner     ReadinessLevel = "iniciante"
	ReadinessIntermediate ReadinessLevel = "intermediario"
	ReadinessReady        ReadinessLevel = "pronto"
)

// ParseReadinessLevel maps free-form AI output onto the three known levels,
// falling back to ReadinessBeginner.
func ParseReadinessLevel(s string) ReadinessLevel {
	switch ReadinessLevel(s) {
	case ReadinessBeginner, ReadinessIntermediate, ReadinessReady:
		return ReadinessLevel(s)
	}
	return ReadinessBeginner
}

// Assessment is written once after a successful analysis and never updated.
type Assessment struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID                   `gorm:"type:uuid;not null;index" json:"user_id"`
	Type            AssessmentType              `gorm:"type:varchar(20);not null" json:"type"`
	ReadinessLevel  ReadinessLevel              `gorm:"type:varchar(20);not null" json:"readiness_level"`
	Score           *int                        `json:"score"`
	Strengths       datatypes.JSONSlice[string] `json:"strengths"`
	AreasToImprove  datatypes.JSONSlice[string] `json:"areas_to_improve"`
	Recommendations datatypes.JSONSlice[string] `json:"recommendations"`
	RawData         datatypes.JSON              `json:"raw_data"`
	CreatedAt       time.Time                   `gorm:"index" json:"created_at"`
}

func (a *Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
