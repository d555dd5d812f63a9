package routes

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/handler"
	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/repository"
)

func SetupHolidayRoutes(app *fiber.App, deps Deps) {
	repo := repository.NewHolidayRepository(deps.DB)
	hdl := handler.NewHolidayHandler(repo)

	api := app.Group("/api/admin/holidays", middleware.Auth(deps.JWTSecret), middleware.Role(adminRoles...))
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
