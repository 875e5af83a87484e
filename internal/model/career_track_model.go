package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// CareerTrack is reference material for a target role, retrieved by
// embedding similarity and injected into questionnaire prompts.
type CareerTrack struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Slug         string          `gorm:"type:varchar(100);uniqueIndex" json:"slug" yaml:"slug"`
	Title        string          `json:"title" yaml:"title"`
	Requirements string          `gorm:"type:text" json:"requirements" yaml:"requirements"`
	Embedding    pgvector.Vector `gorm:"type:vector(3072)" json:"-" yaml:"-"`
	CreatedAt    time.Time       `json:"created_at" yaml:"-"`
	UpdatedAt    time.Time       `json:"updated_at" yaml:"-"`
}

func (t *CareerTrack) TableName() string {
	return "career_tracks"
}

func (t *CareerTrack) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
