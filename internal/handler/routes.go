package handler

import (
	"classics-study/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API under api. attempts may be nil when history
// is disabled, in which case the /attempts routes are not mounted.
func RegisterRoutes(api fiber.Router, sessions *SessionHandler, content *ContentHandler, attempts *AttemptHandler) {
	vm := middleware.NewValidationMiddleware()

	texts := api.Group("/texts")
	texts.Get("/", content.ListTexts)
	texts.Get("/:id", vm.ValidateTextID(), content.GetText)
	texts.Get("/:id/questions", vm.ValidateTextID(), content.ListQuestions)

	sess := api.Group("/sessions")
	sess.Post("/", sessions.StartSession)
	byID := sess.Group("/:id", vm.ValidateSessionID())
	byID.Get("/", sessions.GetSession)
	byID.Delete("/", sessions.DeleteSession)
	byID.Put("/answer", sessions.SelectAnswer)
	byID.Post("/reveal", sessions.Reveal)
	byID.Post("/advance", sessions.Advance)
	byID.Post("/retreat", sessions.Retreat)
	byID.Post("/submit", sessions.Submit)
	byID.Post("/reset", sessions.Reset)
	byID.Get("/score", sessions.GetScore)
	byID.Get("/results", sessions.GetResults)

	if attempts != nil {
		hist := api.Group("/attempts", vm.ValidateAttemptQuery())
		hist.Get("/", attempts.ListAttempts)
		hist.Get("/stats", attempts.GetStats)
	}
}
