package routes

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/handler"
	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/usecase"
)

func SetupHierarchyRoutes(app *fiber.App, deps Deps) {
	uc := usecase.NewHierarchyUsecase(
		repository.NewMembershipRepository(deps.DB),
		repository.NewOfficerRepository(deps.DB),
		repository.NewUnitRepository(deps.DB),
		deps.Locker,
		deps.LockTimeout,
		deps.Logger,
	)
	hdl := handler.NewHierarchyHandler(uc)

	api := app.Group("/api/admin/hierarchy", middleware.Auth(deps.JWTSecret), middleware.Role(adminRoles...))
	api.Get("/", hdl.GetHierarchy)
	api.Get("/availability", hdl.Availability)
	api.Get("/members", hdl.ListMembers)
	api.Post("/members", hdl.AddMember)
	api.Put("/members/:id", hdl.UpdateMember)
	api.Delete("/members/:id", hdl.RemoveMember)
}
