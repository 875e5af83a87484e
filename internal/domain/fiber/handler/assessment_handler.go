package handler

import (
	"io"
	"time"

	"github.com/fadilmartias/nexo-carreira/internal/dto"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/middleware"
	"github.com/fadilmartias/nexo-carreira/internal/usecase"
	"github.com/fadilmartias/nexo-carreira/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AssessmentHandler struct {
	uc  AssessmentUsecase
	log *logger.Logger
}

func NewAssessmentHandler(uc AssessmentUsecase, log *logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, log: log.With("handler", "AssessmentHandler")}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler, limiterStorage fiber.Storage) {
	api := app.Group("/api/assessments", auth)
	api.Get("/questions", h.Questions)
	api.Post("/questionnaire", middleware.RateLimiter(1, 4*time.Second, limiterStorage, EnvelopeError), h.SubmitQuestionnaire)
	api.Post("/resume", middleware.RateLimiter(1, 4*time.Second, limiterStorage, EnvelopeError), h.SubmitResume)
	api.Get("/", h.History)
	api.Get("/:id", h.Get)
}

func (h *AssessmentHandler) Questions(c *fiber.Ctx) error {
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Perguntas do questionário",
		Data:    dto.Questions,
	})
}

func (h *AssessmentHandler) SubmitQuestionnaire(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req dto.QuestionnaireRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: invalidJSONMessage,
		}, err)
	}

	a, msg, err := h.uc.SubmitQuestionnaire(c.UserContext(), user.ID, req.Answers)
	if err != nil {
		h.logFailure(c, "Questionnaire submission failed", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: msg,
		Data:    dto.SubmitResultDTO{Assessment: dto.NewAssessmentDTO(a), MotivationalMessage: msg},
	})
}

func (h *AssessmentHandler) SubmitResume(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Por favor, selecione um arquivo PDF.",
		}, err)
	}
	f, err := file.Open()
	if err != nil {
		return envelopeError(c, err)
	}
	defer f.Close()

	// one byte over the limit is enough for the size check
	data, err := io.ReadAll(io.LimitReader(f, usecase.MaxResumeSize+1))
	if err != nil {
		return envelopeError(c, err)
	}

	a, msg, err := h.uc.SubmitResume(c.UserContext(), user.ID, file.Filename, file.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		h.logFailure(c, "Resume submission failed", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: msg,
		Data:    dto.SubmitResultDTO{Assessment: dto.NewAssessmentDTO(a), MotivationalMessage: msg},
	})
}

func (h *AssessmentHandler) History(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	items, pagination, err := h.uc.History(c.UserContext(), user.ID, c.QueryInt("page", 1), c.QueryInt("page_size", usecase.DefaultPageSize))
	if err != nil {
		h.logFailure(c, "History lookup failed", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Histórico de avaliações",
		Data:       dto.NewAssessmentDTOs(items),
		Pagination: pagination,
	})
}

func (h *AssessmentHandler) Get(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return envelopeError(c, usecase.ErrAssessmentNotFound)
	}
	a, err := h.uc.Get(c.UserContext(), user.ID, id)
	if err != nil {
		h.logFailure(c, "Assessment lookup failed", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Avaliação encontrada",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) logFailure(c *fiber.Ctx, msg string, err error) {
	code, _ := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		h.log.Error(msg, "path", c.Path(), "status", code, "error", err)
		return
	}
	h.log.Warn(msg, "path", c.Path(), "status", code, "error", err)
}
