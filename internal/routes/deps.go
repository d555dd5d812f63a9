package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duty-roster-backend/internal/lock"
)

// Deps is what every route group needs to build its handlers.
type Deps struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	Locker      lock.Locker
	LockTimeout time.Duration
	JWTSecret   string
}

// Admin roles allowed to edit the hierarchy and duty schedules.
var adminRoles = []string{"Admin", "Super Admin"}

// Setup mounts every route group on app.
func Setup(app *fiber.App, deps Deps) {
	SetupHierarchyRoutes(app, deps)
	SetupDutyRoutes(app, deps)
	SetupShiftRoutes(app, deps)
	SetupHolidayRoutes(app, deps)
	SetupDirectoryRoutes(app, deps)
}
