package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/nexo-carreira/internal/dto"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/fadilmartias/nexo-carreira/internal/repository"
	"github.com/fadilmartias/nexo-carreira/internal/response"
	"github.com/fadilmartias/nexo-carreira/internal/service"
	"github.com/fadilmartias/nexo-carreira/internal/util"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	MaxResumeSize        = 5 * 1024 * 1024
	MaxContentLength     = 50000
	DefaultPageSize      = 10
	MaxPageSize          = 50
	MaxPage              = math.MaxInt32 / MaxPageSize
	recentAssessments    = 3
	careerTrackMatches   = 2
	questionnaireMessage = "Seu questionário foi analisado com sucesso."
	resumeMessage        = "Seu currículo foi analisado com sucesso."
)

var ErrAssessmentNotFound = errors.New("Avaliação não encontrada")

var (
	analyzeMessages = util.ValidationMessages{
		"type":             "Tipo deve ser 'questionario' ou 'curriculo'",
		"content.required": "Conteúdo é obrigatório",
		"content.min":      "Conteúdo muito curto (mínimo 10 caracteres)",
		"content.max":      "Conteúdo muito longo (máximo 50KB)",
	}
	geminiAnalyzeMessages = util.ValidationMessages{
		"type":             "Tipo deve ser 'questionario'",
		"content.required": "Conteúdo é obrigatório",
		"content.min":      "Conteúdo muito curto (mínimo 10 caracteres)",
		"content.max":      "Conteúdo muito longo (máximo 50KB)",
	}
)

type AssessmentStore interface {
	Create(ctx context.Context, a *model.Assessment) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Assessment, int64, error)
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*model.Assessment, error)
	ListInsights(ctx context.Context, userID uuid.UUID) (*repository.AssessmentInsights, error)
	Stats(ctx context.Context, userID uuid.UUID) (*repository.AssessmentStats, error)
}

type CareerTrackStore interface {
	Search(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.CareerTrack, error)
	Upsert(ctx context.Context, track *model.CareerTrack) error
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type AssessmentUsecase struct {
	assessments AssessmentStore
	gemini      service.Analyzer
	gateway     service.Analyzer
	storage     service.ResumeStorage
	tracks      CareerTrackStore
	embedder    Embedder
	log         *logger.Logger
}

func NewAssessmentUsecase(assessments AssessmentStore, gemini, gateway service.Analyzer, storage service.ResumeStorage, log *logger.Logger) *AssessmentUsecase {
	return &AssessmentUsecase{
		assessments: assessments,
		gemini:      gemini,
		gateway:     gateway,
		storage:     storage,
		log:         log.With("usecase", "AssessmentUsecase"),
	}
}

// WithCareerTracks turns on career-track context for questionnaire analyses.
func (uc *AssessmentUsecase) WithCareerTracks(tracks CareerTrackStore, embedder Embedder) *AssessmentUsecase {
	uc.tracks = tracks
	uc.embedder = embedder
	return uc
}

// AnalyzeWithGemini validates a questionnaire payload and returns Gemini's
// JSON verdict untouched. Nothing is persisted.
func (uc *AssessmentUsecase) AnalyzeWithGemini(ctx context.Context, req dto.GeminiAnalyzeRequest) (json.RawMessage, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := util.ValidateStruct(req, geminiAnalyzeMessages); err != nil {
		return nil, err
	}
	analysis, err := uc.gemini.Analyze(ctx, model.AssessmentType(req.Type), req.Content, "")
	if err != nil {
		return nil, err
	}
	return analysis.Raw, nil
}

// AnalyzeWithGateway is AnalyzeWithGemini for the AI gateway, which also
// accepts résumé content.
func (uc *AssessmentUsecase) AnalyzeWithGateway(ctx context.Context, req dto.AnalyzeRequest) (json.RawMessage, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := util.ValidateStruct(req, analyzeMessages); err != nil {
		return nil, err
	}
	analysis, err := uc.gateway.Analyze(ctx, model.AssessmentType(req.Type), req.Content, "")
	if err != nil {
		return nil, err
	}
	return analysis.Raw, nil
}

func (uc *AssessmentUsecase) SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers map[string]string) (*model.Assessment, string, error) {
	cleaned := make(map[string]string, len(dto.Questions))
	missing := map[string]string{}
	for _, q := range dto.Questions {
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			missing[q.ID] = "Por favor, preencha todos os campos antes de enviar."
			continue
		}
		cleaned[q.ID] = answer
	}
	if len(missing) > 0 {
		return nil, "", util.NewFormError("Responda todas as perguntas", missing)
	}

	content := FormatQuestionnaire(cleaned)
	if utf8.RuneCountInString(content) > MaxContentLength {
		return nil, "", util.NewFormError("Validação falhou: "+analyzeMessages["content.max"], map[string]string{"content": analyzeMessages["content.max"]})
	}

	reference := uc.careerTrackContext(ctx, cleaned[dto.ObjectiveQuestionID])
	analysis, err := uc.gemini.Analyze(ctx, model.AssessmentTypeQuestionnaire, content, reference)
	if err != nil {
		return nil, "", err
	}

	raw, err := json.Marshal(map[string]any{
		"answers":  cleaned,
		"analysis": analysis.Raw,
	})
	if err != nil {
		return nil, "", err
	}

	a := newAssessment(userID, model.AssessmentTypeQuestionnaire, analysis, raw)
	if err := uc.assessments.Create(ctx, a); err != nil {
		return nil, "", fmt.Errorf("save assessment: %w", err)
	}
	uc.log.Info("Questionnaire assessment saved", "assessment_id", a.ID, "user_id", userID, "level", a.ReadinessLevel)
	return a, messageOr(analysis.Result.MotivationalMessage, questionnaireMessage), nil
}

func (uc *AssessmentUsecase) SubmitResume(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*model.Assessment, string, error) {
	if !isPDF(filename, contentType) {
		return nil, "", util.NewFormError("Por favor, envie apenas arquivos PDF.", map[string]string{"file": "Formato inválido"})
	}
	if len(data) == 0 {
		return nil, "", util.NewFormError("Por favor, selecione um arquivo PDF.", map[string]string{"file": "Arquivo não selecionado"})
	}
	if len(data) > MaxResumeSize {
		return nil, "", util.NewFormError("O arquivo deve ter no máximo 5MB.", map[string]string{"file": "Arquivo muito grande"})
	}

	text, err := util.ExtractResumeText(data)
	if err != nil {
		uc.log.Warn("Resume text extraction failed", "user_id", userID, "error", err)
		return nil, "", util.NewFormError(util.ErrResumeTextUnreadable.Error(), map[string]string{"file": "Texto ilegível"})
	}

	analysis, err := uc.gateway.Analyze(ctx, model.AssessmentTypeResume, text, "")
	if err != nil {
		return nil, "", err
	}

	key := fmt.Sprintf("%s/%s.pdf", userID, uuid.New())
	if err := uc.storage.Save(ctx, key, "application/pdf", bytes.NewReader(data)); err != nil {
		return nil, "", fmt.Errorf("store resume: %w", err)
	}

	raw, err := json.Marshal(map[string]any{
		"filename":    filepath.Base(filename),
		"storage_key": key,
		"analysis":    analysis.Raw,
	})
	if err != nil {
		return nil, "", err
	}

	a := newAssessment(userID, model.AssessmentTypeResume, analysis, raw)
	if err := uc.assessments.Create(ctx, a); err != nil {
		return nil, "", fmt.Errorf("save assessment: %w", err)
	}
	uc.log.Info("Resume assessment saved", "assessment_id", a.ID, "user_id", userID, "level", a.ReadinessLevel)
	return a, messageOr(analysis.Result.MotivationalMessage, resumeMessage), nil
}

func (uc *AssessmentUsecase) History(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Assessment, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	offset := (page - 1) * pageSize

	items, total, err := uc.assessments.ListByUser(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, nil, err
	}
	return items, newPagination(page, pageSize, total, len(items)), nil
}

func (uc *AssessmentUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*model.Assessment, error) {
	a, err := uc.assessments.FindByIDForUser(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssessmentNotFound
	}
	return a, err
}

func (uc *AssessmentUsecase) Overview(ctx context.Context, userID uuid.UUID) (*dto.OverviewDTO, error) {
	var (
		recent []model.Assessment
		stats  *repository.AssessmentStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recent, _, err = uc.assessments.ListByUser(gctx, userID, recentAssessments, 0)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = uc.assessments.Stats(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.OverviewDTO{
		TotalAssessments: int(stats.Total),
		AverageScore:     stats.AverageScore,
		Recent:           dto.NewAssessmentDTOs(recent),
	}
	if stats.Latest != nil {
		at := stats.Latest.CreatedAt
		out.LastAssessmentAt = &at
		out.LatestLevel = string(stats.Latest.ReadinessLevel)
	}
	return out, nil
}

// Strengths returns every strength the user has been credited with, newest
// assessment first and without repeats.
func (uc *AssessmentUsecase) Strengths(ctx context.Context, userID uuid.UUID) ([]string, error) {
	insights, err := uc.assessments.ListInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uniqueInOrder(insights.Strengths), nil
}

func (uc *AssessmentUsecase) Improvements(ctx context.Context, userID uuid.UUID) ([]string, error) {
	insights, err := uc.assessments.ListInsights(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uniqueInOrder(insights.AreasToImprove), nil
}

// EmbedCareerTracks embeds each track's requirements and upserts it by slug.
func (uc *AssessmentUsecase) EmbedCareerTracks(ctx context.Context, tracks []model.CareerTrack) (int, error) {
	if uc.tracks == nil || uc.embedder == nil {
		return 0, errors.New("career tracks are not enabled")
	}
	for i := range tracks {
		track := &tracks[i]
		if strings.TrimSpace(track.Slug) == "" {
			return i, fmt.Errorf("track %d: slug is required", i+1)
		}
		emb, err := uc.embedder.GenerateEmbedding(ctx, track.Title+"\n"+track.Requirements)
		if err != nil {
			return i, fmt.Errorf("embed track %s: %w", track.Slug, err)
		}
		track.Embedding = pgvector.NewVector(emb)
		if err := uc.tracks.Upsert(ctx, track); err != nil {
			return i, fmt.Errorf("save track %s: %w", track.Slug, err)
		}
		uc.log.Info("Career track embedded", "slug", track.Slug)
	}
	return len(tracks), nil
}

// careerTrackContext never fails the analysis; lookup problems only cost
// the extra context.
func (uc *AssessmentUsecase) careerTrackContext(ctx context.Context, objective string) string {
	if uc.tracks == nil || uc.embedder == nil || strings.TrimSpace(objective) == "" {
		return ""
	}
	emb, err := uc.embedder.GenerateEmbedding(ctx, objective)
	if err != nil {
		uc.log.Warn("Objective embedding failed", "error", err)
		return ""
	}
	tracks, err := uc.tracks.Search(ctx, pgvector.NewVector(emb), careerTrackMatches)
	if err != nil {
		uc.log.Warn("Career track search failed", "error", err)
		return ""
	}

	var b strings.Builder
	for i, t := range tracks {
		fmt.Fprintf(&b, "Trilha %d: %s\nRequisitos: %s\n\n", i+1, t.Title, t.Requirements)
	}
	return strings.TrimSpace(b.String())
}

// FormatQuestionnaire renders answers as "<label>:\n<answer>" blocks in
// questionnaire order.
func FormatQuestionnaire(answers map[string]string) string {
	blocks := make([]string, 0, len(dto.Questions))
	for _, q := range dto.Questions {
		blocks = append(blocks, q.Label+":\n"+answers[q.ID])
	}
	return strings.Join(blocks, "\n\n")
}

func newAssessment(userID uuid.UUID, kind model.AssessmentType, analysis *service.Analysis, raw []byte) *model.Assessment {
	return &model.Assessment{
		UserID:          userID,
		Type:            kind,
		ReadinessLevel:  model.ParseReadinessLevel(analysis.Result.Level),
		Score:           analysis.Result.Score,
		Strengths:       analysis.Result.Strengths,
		AreasToImprove:  analysis.Result.AreasToImprove,
		Recommendations: analysis.Result.Recommendations,
		RawData:         raw,
	}
}

func newPagination(page, pageSize int, total int64, count int) *response.Pagination {
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	p := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	if count > 0 {
		p.From = (page-1)*pageSize + 1
		p.To = p.From + count - 1
	}
	return p
}

func uniqueInOrder(groups [][]string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, group := range groups {
		for _, s := range group {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func isPDF(filename, contentType string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "application/pdf") {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
