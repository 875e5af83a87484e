package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive across queries
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Assessment{}))
	return db
}

func intPtr(v int) *int { return &v }

func seed(t *testing.T, repo *AssessmentRepository, userID uuid.UUID, at time.Time, score *int, strengths ...string) *model.Assessment {
	t.Helper()
	a := &model.Assessment{
		UserID:          userID,
		Type:            model.AssessmentTypeQuestionnaire,
		ReadinessLevel:  model.ReadinessIntermediate,
		Score:           score,
		Strengths:       strengths,
		AreasToImprove:  []string{"Inglês"},
		Recommendations: []string{"Faça um curso"},
		RawData:         []byte(`{"answers":{}}`),
		CreatedAt:       at,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAssessmentRepositoryCreateAssignsID(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	a := seed(t, repo, uuid.New(), time.Now(), intPtr(70), "Comunicação")

	assert.NotEqual(t, uuid.Nil, a.ID)

	got, err := repo.FindByIDForUser(context.Background(), a.UserID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comunicação"}, []string(got.Strengths))
	assert.Equal(t, 70, *got.Score)
	assert.JSONEq(t, `{"answers":{}}`, string(got.RawData))
}

func TestAssessmentRepositoryScopesByUser(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	owner := uuid.New()
	a := seed(t, repo, owner, time.Now(), nil)

	_, err := repo.FindByIDForUser(context.Background(), uuid.New(), a.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	items, total, err := repo.ListByUser(context.Background(), uuid.New(), 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestAssessmentRepositoryListNewestFirst(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	user := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	oldest := seed(t, repo, user, base, intPtr(40))
	middle := seed(t, repo, user, base.Add(time.Hour), intPtr(60))
	newest := seed(t, repo, user, base.Add(2*time.Hour), intPtr(80))

	items, total, err := repo.ListByUser(context.Background(), user, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 2)
	assert.Equal(t, newest.ID, items[0].ID)
	assert.Equal(t, middle.ID, items[1].ID)

	items, _, err = repo.ListByUser(context.Background(), user, 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, oldest.ID, items[0].ID)
}

func TestAssessmentRepositoryStats(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	user := uuid.New()

	empty, err := repo.Stats(context.Background(), user)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Nil(t, empty.AverageScore)
	assert.Nil(t, empty.Latest)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, user, base, intPtr(50))
	seed(t, repo, user, base.Add(time.Hour), nil)
	latest := seed(t, repo, user, base.Add(2*time.Hour), intPtr(90))

	stats, err := repo.Stats(context.Background(), user)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.Total)
	require.NotNil(t, stats.AverageScore)
	assert.InDelta(t, 70.0, *stats.AverageScore, 0.001)
	require.NotNil(t, stats.Latest)
	assert.Equal(t, latest.ID, stats.Latest.ID)
}

func TestAssessmentRepositoryListInsights(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	user := uuid.New()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seed(t, repo, user, base, nil, "Proatividade")
	seed(t, repo, user, base.Add(time.Hour), nil, "Excel", "Proatividade")

	insights, err := repo.ListInsights(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Excel", "Proatividade"}, {"Proatividade"}}, insights.Strengths)
	assert.Len(t, insights.AreasToImprove, 2)
}
