package repository

import (
	"context"

	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CareerTrackRepository struct {
	db *gorm.DB
}

func NewCareerTrackRepository(db *gorm.DB) *CareerTrackRepository {
	return &CareerTrackRepository{db}
}

// Search returns the topK tracks closest to embedding by L2 distance.
func (r *CareerTrackRepository) Search(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.CareerTrack, error) {
	var tracks []model.CareerTrack
	err := r.db.WithContext(ctx).Raw(`
        SELECT id, slug, title, requirements, created_at, updated_at
        FROM career_tracks
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, topK).Scan(&tracks).Error
	return tracks, err
}

// Upsert inserts the track or refreshes the existing row with the same slug.
func (r *CareerTrackRepository) Upsert(ctx context.Context, track *model.CareerTrack) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "requirements", "embedding", "updated_at"}),
	}).Create(track).Error
}
