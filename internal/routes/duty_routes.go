package routes

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/handler"
	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/usecase"
)

func newDutyUsecases(deps Deps) (*usecase.DutyUsecase, *usecase.CalendarUsecase) {
	duties := repository.NewDutyRepository(deps.DB)
	duty := usecase.NewDutyUsecase(
		duties,
		repository.NewMembershipRepository(deps.DB),
		repository.NewOfficerRepository(deps.DB),
		repository.NewHolidayRepository(deps.DB),
		deps.Logger,
	)
	return duty, usecase.NewCalendarUsecase(duties, deps.Logger)
}

func SetupDutyRoutes(app *fiber.App, deps Deps) {
	hdl := handler.NewDutyHandler(newDutyUsecases(deps))

	// Officer routes
	app.Get("/api/duty/mine", middleware.Auth(deps.JWTSecret), hdl.Mine)

	api := app.Group("/api/admin/duty", middleware.Auth(deps.JWTSecret), middleware.Role(adminRoles...))
	api.Post("/compose", hdl.Compose)
	api.Get("/calendar", hdl.Calendar)
	api.Get("/calendar/export", hdl.ExportCalendar)
	api.Get("/schedules", hdl.FindSchedule)
	api.Post("/schedules", hdl.CreateSchedule)
	api.Get("/schedules/:id", hdl.GetSchedule)
	api.Put("/schedules/:id", hdl.ReplaceSchedule)
	api.Delete("/schedules/:id", hdl.DeleteSchedule)
}
