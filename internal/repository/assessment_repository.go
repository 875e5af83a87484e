package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AssessmentStats summarizes a user's assessment history.
type AssessmentStats struct {
	Total        int64
	AverageScore *float64
	Latest       *model.Assessment
}

// AssessmentInsights holds only the list columns, newest assessment first.
type AssessmentInsights struct {
	Strengths      [][]string
	AreasToImprove [][]string
}

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

func (r *AssessmentRepository) Create(ctx context.Context, a *model.Assessment) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Assessment, int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Assessment{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, total, err
}

// FindByIDForUser returns gorm.ErrRecordNotFound when the record does not
// exist or belongs to someone else.
func (r *AssessmentRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*model.Assessment, error) {
	var a model.Assessment
	err := r.db.WithContext(ctx).First(&a, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) ListInsights(ctx context.Context, userID uuid.UUID) (*AssessmentInsights, error) {
	var rows []model.Assessment
	err := r.db.WithContext(ctx).
		Select("strengths", "areas_to_improve", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &AssessmentInsights{
		Strengths:      make([][]string, 0, len(rows)),
		AreasToImprove: make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		out.Strengths = append(out.Strengths, row.Strengths)
		out.AreasToImprove = append(out.AreasToImprove, row.AreasToImprove)
	}
	return out, nil
}

func (r *AssessmentRepository) Stats(ctx context.Context, userID uuid.UUID) (*AssessmentStats, error) {
	stats := &AssessmentStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Assessment{}).Where("user_id = ?", userID).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if stats.Total == 0 {
		return stats, nil
	}

	var avg sql.NullFloat64
	err := db.Model(&model.Assessment{}).
		Select("AVG(score)").
		Where("user_id = ? AND score IS NOT NULL", userID).
		Row().
		Scan(&avg)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AverageScore = &avg.Float64
	}

	var latest model.Assessment
	err = db.Where("user_id = ?", userID).Order("created_at DESC").First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		stats.Latest = &latest
	}
	return stats, nil
}
