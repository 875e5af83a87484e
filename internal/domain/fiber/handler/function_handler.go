package handler

import (
	"github.com/fadilmartias/nexo-carreira/internal/dto"
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// FunctionHandler serves the two analysis relays under /functions/v1. They
// answer with the bare AI JSON on success and {"error": ...} otherwise.
type FunctionHandler struct {
	uc  AssessmentUsecase
	log *logger.Logger
}

func NewFunctionHandler(uc AssessmentUsecase, log *logger.Logger) *FunctionHandler {
	return &FunctionHandler{uc: uc, log: log.With("handler", "FunctionHandler")}
}

func (h *FunctionHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	fn := app.Group("/functions/v1", auth)
	fn.Post("/gemini-assessment", h.GeminiAssessment)
	fn.Post("/analyze-assessment", h.AnalyzeAssessment)
}

func (h *FunctionHandler) GeminiAssessment(c *fiber.Ctx) error {
	var req dto.GeminiAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, invalidJSONMessage, err)
	}
	raw, err := h.uc.AnalyzeWithGemini(c.UserContext(), req)
	if err != nil {
		code, msg := statusFor(err)
		return h.fail(c, code, msg, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (h *FunctionHandler) AnalyzeAssessment(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, fiber.StatusBadRequest, invalidJSONMessage, err)
	}
	raw, err := h.uc.AnalyzeWithGateway(c.UserContext(), req)
	if err != nil {
		code, msg := statusFor(err)
		return h.fail(c, code, msg, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(raw)
}

func (h *FunctionHandler) fail(c *fiber.Ctx, code int, msg string, err error) error {
	if code >= fiber.StatusInternalServerError {
		h.log.Error("Assessment function failed", "path", c.Path(), "status", code, "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
