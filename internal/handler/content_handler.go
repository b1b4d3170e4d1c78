package handler

import (
	"classics-study/internal/middleware"
	"classics-study/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContentHandler serves the text browser
type ContentHandler struct {
	service service.ContentService
}

func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// ListTexts godoc
// @Summary List texts
// @Tags texts
// @Produce json
// @Success 200 {object} dto.TextListResponse
// @Router /texts [get]
func (h *ContentHandler) ListTexts(c *fiber.Ctx) error {
	resp, err := h.service.ListTexts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetText godoc
// @Summary Get a text
// @Tags texts
// @Produce json
// @Param id path int true "Text ID"
// @Success 200 {object} dto.TextDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /texts/{id} [get]
func (h *ContentHandler) GetText(c *fiber.Ctx) error {
	resp, err := h.service.GetText(c.UserContext(), c.Locals(middleware.LocalTextID).(int))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuestions godoc
// @Summary List a text's questions
// @Description Questions are returned without their answers
// @Tags texts
// @Produce json
// @Param id path int true "Text ID"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /texts/{id}/questions [get]
func (h *ContentHandler) ListQuestions(c *fiber.Ctx) error {
	resp, err := h.service.ListQuestions(c.UserContext(), c.Locals(middleware.LocalTextID).(int))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
