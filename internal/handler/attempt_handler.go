package handler

import (
	"classics-study/internal/middleware"
	"classics-study/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AttemptHandler exposes the attempt history
type AttemptHandler struct {
	service service.HistoryService
}

func NewAttemptHandler(service service.HistoryService) *AttemptHandler {
	return &AttemptHandler{service: service}
}

// ListAttempts godoc
// @Summary List recent attempts
// @Description Newest first; text_id narrows the list to one text (0 = whole-bank sessions)
// @Tags attempts
// @Produce json
// @Param text_id query int false "Text ID"
// @Param limit query int false "Maximum rows (1-100)"
// @Success 200 {object} dto.AttemptListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /attempts [get]
func (h *AttemptHandler) ListAttempts(c *fiber.Ctx) error {
	textID := c.Locals(middleware.LocalTextID).(int)
	limit := c.Locals(middleware.LocalLimit).(int)

	if textID >= 0 {
		resp, err := h.service.ForText(c.UserContext(), textID, limit)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
	resp, err := h.service.Recent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetStats godoc
// @Summary Attempt statistics
// @Description Aggregates one text, or every attempt when text_id is absent or 0
// @Tags attempts
// @Produce json
// @Param text_id query int false "Text ID"
// @Success 200 {object} dto.AttemptStatsResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /attempts/stats [get]
func (h *AttemptHandler) GetStats(c *fiber.Ctx) error {
	textID := c.Locals(middleware.LocalTextID).(int)
	if textID < 0 {
		textID = 0
	}
	resp, err := h.service.Stats(c.UserContext(), textID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
