package database

import (
	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
)

// Models lists every table the service owns or reads, in creation order.
func Models() []any {
	return []any{
		&model.Unit{},
		&model.Officer{},
		&model.UnitMembership{},
		&model.Holiday{},
		&model.DutySchedule{},
		&model.DutyAssignment{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
