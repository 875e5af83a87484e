package handler

import (
	"github.com/fadilmartias/nexo-carreira/internal/logger"
	"github.com/fadilmartias/nexo-carreira/internal/middleware"
	"github.com/fadilmartias/nexo-carreira/internal/util"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	uc  AssessmentUsecase
	log *logger.Logger
}

func NewDashboardHandler(uc AssessmentUsecase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log.With("handler", "DashboardHandler")}
}

func (h *DashboardHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	d := app.Group("/api/dashboard", auth)
	d.Get("/overview", h.Overview)
	d.Get("/strengths", h.Strengths)
	d.Get("/improvements", h.Improvements)
}

func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	out, err := h.uc.Overview(c.UserContext(), user.ID)
	if err != nil {
		h.log.Error("Overview failed", "user_id", user.ID, "error", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resumo do painel",
		Data:    out,
	})
}

func (h *DashboardHandler) Strengths(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	items, err := h.uc.Strengths(c.UserContext(), user.ID)
	if err != nil {
		h.log.Error("Strengths lookup failed", "user_id", user.ID, "error", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Pontos fortes",
		Data:    items,
	})
}

func (h *DashboardHandler) Improvements(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	items, err := h.uc.Improvements(c.UserContext(), user.ID)
	if err != nil {
		h.log.Error("Improvements lookup failed", "user_id", user.ID, "error", err)
		return envelopeError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Pontos a melhorar",
		Data:    items,
	})
}
