package middleware

import (
	"classics-study/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalSessionID = "validated_session_id"
	LocalTextID    = "validated_text_id"
	LocalLimit     = "validated_limit"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID checks the :id path parameter is a ULID.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateSessionID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(LocalSessionID, id)
		return c.Next()
	}
}

// ValidateTextID checks the :id path parameter is a positive text id.
func (vm *ValidationMiddleware) ValidateTextID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errs := vm.validator.ParseTextID("id", c.Params("id"), false)
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LocalTextID, id)
		return c.Next()
	}
}

// ValidateAttemptQuery checks the optional text_id and limit query
// parameters. A missing text_id is stored as -1.
func (vm *ValidationMiddleware) ValidateAttemptQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		textID := -1
		if raw := c.Query("text_id"); raw != "" {
			id, errs := vm.validator.ParseTextID("text_id", raw, true)
			if len(errs) > 0 {
				return errs
			}
			textID = id
		}

		limit, errs := vm.validator.ParseLimit(c.Query("limit"))
		if len(errs) > 0 {
			return errs
		}

		c.Locals(LocalTextID, textID)
		c.Locals(LocalLimit, limit)
		return c.Next()
	}
}
