package handler

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fadilmartias/nexo-carreira/internal/dto"
	"github.com/fadilmartias/nexo-carreira/internal/model"
	"github.com/fadilmartias/nexo-carreira/internal/response"
	"github.com/fadilmartias/nexo-carreira/internal/service"
	"github.com/fadilmartias/nexo-carreira/internal/usecase"
	"github.com/fadilmartias/nexo-carreira/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const invalidJSONMessage = "Validação falhou: corpo JSON inválido"

// AssessmentUsecase is what the HTTP layer needs from the assessment flows.
type AssessmentUsecase interface {
	AnalyzeWithGemini(ctx context.Context, req dto.GeminiAnalyzeRequest) (json.RawMessage, error)
	AnalyzeWithGateway(ctx context.Context, req dto.AnalyzeRequest) (json.RawMessage, error)
	SubmitQuestionnaire(ctx context.Context, userID uuid.UUID, answers map[string]string) (*model.Assessment, string, error)
	SubmitResume(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*model.Assessment, string, error)
	History(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.Assessment, *response.Pagination, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Assessment, error)
	Overview(ctx context.Context, userID uuid.UUID) (*dto.OverviewDTO, error)
	Strengths(ctx context.Context, userID uuid.UUID) ([]string, error)
	Improvements(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// statusFor maps usecase errors onto an HTTP status and a client message.
func statusFor(err error) (int, string) {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return fiber.StatusBadRequest, formErr.Message
	}
	var upErr *service.UpstreamError
	if errors.As(err, &upErr) {
		return upErr.Status, upErr.Message
	}
	if errors.Is(err, usecase.ErrAssessmentNotFound) {
		return fiber.StatusNotFound, usecase.ErrAssessmentNotFound.Error()
	}
	return fiber.StatusInternalServerError, err.Error()
}

// envelopeError writes err with the /api response envelope.
func envelopeError(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	params := util.ErrorResponseFormat{Code: code, Message: msg}
	var formErr *util.FormError
	if errors.As(err, &formErr) && len(formErr.Errors) > 0 {
		params.Details = formErr.Errors
	}
	return util.ErrorResponse(c, params, err)
}

// EnvelopeError renders middleware failures with the /api envelope.
func EnvelopeError(c *fiber.Ctx, status int, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: status, Message: message}, err)
}
