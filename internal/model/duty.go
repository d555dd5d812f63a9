package model

import (
	"time"

	"gorm.io/gorm"
)

// DutySchedule is one calendar entry: a date, a period and the unit in charge.
// The (duty_date, period, head_unit_code) slot is unique, so re-submitting the
// same slot replaces it.
type DutySchedule struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	DutyDate      string    `json:"duty_date" gorm:"size:10;not null;uniqueIndex:idx_duty_schedule_slot"` // YYYY-MM-DD
	Period        string    `json:"period" gorm:"size:8;not null;uniqueIndex:idx_duty_schedule_slot"`
	HeadUnitCode  string    `json:"head_unit_code" gorm:"size:32;not null;uniqueIndex:idx_duty_schedule_slot"`
	ShiftCategory string    `json:"shift_category" gorm:"size:16;not null"`
	DayType       string    `json:"day_type" gorm:"size:8;not null"`
	Notes         string    `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Assignments []DutyAssignment `json:"assignments,omitempty" gorm:"foreignKey:ScheduleID"`
}

func (DutySchedule) TableName() string {
	return "duty_schedule"
}

// DutyAssignment is one officer on one schedule. It is only ever written as
// part of a whole-schedule batch.
type DutyAssignment struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ScheduleID     uint   `json:"schedule_id" gorm:"not null;uniqueIndex:idx_duty_assignment_officer"`
	DutyDate       string `json:"duty_date" gorm:"size:32;not null;index"`
	PositionNumber string `json:"position_number" gorm:"size:32;not null;uniqueIndex:idx_duty_assignment_officer;index"`
	UnitCode       string `json:"unit_code" gorm:"size:32;not null;index"`
	ShiftCategory  string `json:"shift_category" gorm:"size:16;not null"`
	DayType        string `json:"day_type" gorm:"size:8;not null"`

	Officer  *Officer      `json:"officer,omitempty" gorm:"foreignKey:PositionNumber;references:PositionNumber"`
	Unit     *Unit         `json:"unit,omitempty" gorm:"foreignKey:UnitCode;references:UnitCode"`
	Schedule *DutySchedule `json:"-" gorm:"foreignKey:ScheduleID"`
}

func (DutyAssignment) TableName() string {
	return "duty_assignment"
}

// Holiday marks a non-working date.
type Holiday struct {
	gorm.Model
	Date        string `json:"date" gorm:"column:holiday_date;size:10;uniqueIndex;not null"` // YYYY-MM-DD
	Description string `json:"description" gorm:"size:255"`
}
