package routes

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/handler"
	"duty-roster-backend/internal/middleware"
)

func SetupShiftRoutes(app *fiber.App, deps Deps) {
	duty, _ := newDutyUsecases(deps)
	hdl := handler.NewShiftHandler(duty)

	api := app.Group("/api/shift-categories", middleware.Auth(deps.JWTSecret))
	api.Get("/", hdl.GetAll)
	api.Get("/classify", hdl.Classify)
}
