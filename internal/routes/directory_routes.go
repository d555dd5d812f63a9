package routes

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/handler"
	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/repository"
)

func SetupDirectoryRoutes(app *fiber.App, deps Deps) {
	hdl := handler.NewDirectoryHandler(repository.NewOfficerRepository(deps.DB), repository.NewUnitRepository(deps.DB))

	guard := []fiber.Handler{middleware.Auth(deps.JWTSecret), middleware.Role(adminRoles...)}
	app.Get("/api/admin/officers", append(guard, hdl.SearchOfficers)...)
	app.Get("/api/admin/units", append(guard, hdl.GetUnits)...)
}
