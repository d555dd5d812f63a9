package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/roster"
)

type AssignmentFilter struct {
	UnitCode       string
	PositionNumber string
}

// DutyRepository is the batch writer for duty schedules. A schedule and its
// assignments are only ever written together.
type DutyRepository interface {
	SaveSchedule(ctx context.Context, schedule *model.DutySchedule, assignments []model.DutyAssignment) error
	DeleteSchedule(ctx context.Context, id uint) error
	GetScheduleByID(ctx context.Context, id uint) (*model.DutySchedule, error)
	FindSlot(ctx context.Context, dutyDate, period, headUnitCode string) (*model.DutySchedule, error)
	ListAssignments(ctx context.Context, from, to string, filter AssignmentFilter) ([]roster.AssignmentRow, error)
}

type dutyRepository struct {
	db *gorm.DB
}

func NewDutyRepository(db *gorm.DB) DutyRepository {
	return &dutyRepository{db}
}

// SaveSchedule creates the schedule or replaces an existing one. The existing
// schedule is found by ID when set, otherwise by its (date, period, head unit)
// slot. Old assignments are cleared before the new ones are inserted, and the
// whole batch commits or none of it does.
func (r *dutyRepository) SaveSchedule(ctx context.Context, schedule *model.DutySchedule, assignments []model.DutyAssignment) error {
	origID, origCreated, origUpdated := schedule.ID, schedule.CreatedAt, schedule.UpdatedAt
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.DutySchedule
		if schedule.ID != 0 {
			if err := forUpdate(tx).First(&existing, schedule.ID).Error; err != nil {
				return translate(err, fmt.Sprintf("schedule %d", schedule.ID))
			}
		} else {
			err := forUpdate(tx).
				Where("duty_date = ? AND period = ? AND head_unit_code = ?", schedule.DutyDate, schedule.Period, schedule.HeadUnitCode).
				Limit(1).Find(&existing).Error
			if err != nil {
				return translate(err, "find schedule slot")
			}
		}

		if existing.ID != 0 {
			schedule.ID = existing.ID
			schedule.CreatedAt = existing.CreatedAt
			if err := tx.Where("schedule_id = ?", existing.ID).Delete(&model.DutyAssignment{}).Error; err != nil {
				return roster.Persistence(err, "clear assignments of schedule %d", existing.ID)
			}
			err := tx.Model(schedule).
				Select("duty_date", "period", "head_unit_code", "shift_category", "day_type", "notes", "updated_at").
				Updates(schedule).Error
			if err != nil {
				return translate(err, "update schedule")
			}
		} else if err := tx.Omit("Assignments").Create(schedule).Error; err != nil {
			return translate(err, "create schedule")
		}

		for i := range assignments {
			assignments[i].ID = 0
			assignments[i].ScheduleID = schedule.ID
			if err := tx.Omit("Officer", "Unit", "Schedule").Create(&assignments[i]).Error; err != nil {
				return roster.Persistence(err, "assignment %d of %d (%s)", i+1, len(assignments), assignments[i].PositionNumber)
			}
		}
		return nil
	})
	if err == nil {
		schedule.Assignments = assignments
		return nil
	}

	// Nothing was committed, so the caller gets its input back unchanged.
	schedule.ID, schedule.CreatedAt, schedule.UpdatedAt = origID, origCreated, origUpdated
	for i := range assignments {
		assignments[i].ID = 0
		assignments[i].ScheduleID = origID
	}
	switch roster.KindOf(err) {
	case roster.KindPersistence, roster.KindNotFound, roster.KindConflict, roster.KindValidation:
		return err
	}
	return roster.Persistence(err, "save schedule")
}

func (r *dutyRepository) DeleteSchedule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("schedule_id = ?", id).Delete(&model.DutyAssignment{}).Error; err != nil {
			return roster.Persistence(err, "delete assignments of schedule %d", id)
		}
		res := tx.Delete(&model.DutySchedule{}, id)
		if res.Error != nil {
			return roster.Persistence(res.Error, "delete schedule %d", id)
		}
		if res.RowsAffected == 0 {
			return roster.NotFound("schedule %d not found", id)
		}
		return nil
	})
}

func (r *dutyRepository) GetScheduleByID(ctx context.Context, id uint) (*model.DutySchedule, error) {
	var schedule model.DutySchedule
	err := r.db.WithContext(ctx).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Assignments.Officer").
		Preload("Assignments.Unit").
		First(&schedule, id).Error
	if err != nil {
		return nil, translate(err, fmt.Sprintf("schedule %d", id))
	}
	return &schedule, nil
}

func (r *dutyRepository) FindSlot(ctx context.Context, dutyDate, period, headUnitCode string) (*model.DutySchedule, error) {
	var schedule model.DutySchedule
	err := r.db.WithContext(ctx).
		Where("duty_date = ? AND period = ? AND head_unit_code = ?", dutyDate, period, headUnitCode).
		Limit(1).Find(&schedule).Error
	if err != nil {
		return nil, translate(err, "find schedule slot")
	}
	if schedule.ID == 0 {
		return nil, roster.NotFound("no schedule on %s %s for %s", dutyDate, period, headUnitCode)
	}
	return &schedule, nil
}

// ListAssignments returns assignments whose date falls in [from, to]. Dates are
// compared as text, so the upper bound is the day after to, which also admits
// timestamped values written on the last day.
func (r *dutyRepository) ListAssignments(ctx context.Context, from, to string, filter AssignmentFilter) ([]roster.AssignmentRow, error) {
	end, err := roster.ParseDate(to)
	if err != nil {
		return nil, err
	}
	type row struct {
		ScheduleID     uint
		DutyDate       string
		HeadUnitCode   string
		ShiftCategory  string
		DayType        string
		PositionNumber string
		OfficerName    string
		UnitCode       string
		UnitName       string
	}

	query := r.db.WithContext(ctx).Table("duty_assignment AS a").
		Select("a.schedule_id, a.duty_date, s.head_unit_code, a.shift_category, a.day_type, a.position_number, "+
			"COALESCE(o.name, '') AS officer_name, a.unit_code, COALESCE(u.unit_name, '') AS unit_name").
		Joins("JOIN duty_schedule s ON s.id = a.schedule_id").
		Joins("LEFT JOIN officers o ON o.position_number = a.position_number AND o.deleted_at IS NULL").
		Joins("LEFT JOIN units u ON u.unit_code = a.unit_code AND u.deleted_at IS NULL").
		Where("a.duty_date >= ? AND a.duty_date < ?", from, end.AddDate(0, 0, 1).Format(roster.DateLayout))

	if filter.UnitCode != "" {
		query = query.Where("a.unit_code = ?", filter.UnitCode)
	}
	if filter.PositionNumber != "" {
		query = query.Where("a.position_number = ?", filter.PositionNumber)
	}

	var rows []row
	if err := query.Order("a.duty_date asc").Order("a.id asc").Scan(&rows).Error; err != nil {
		return nil, translate(err, "list assignments")
	}

	out := make([]roster.AssignmentRow, len(rows))
	for i, x := range rows {
		out[i] = roster.AssignmentRow{
			ScheduleID:     x.ScheduleID,
			DutyDate:       x.DutyDate,
			HeadUnitCode:   x.HeadUnitCode,
			Category:       roster.Category(x.ShiftCategory),
			DayType:        roster.DayType(x.DayType),
			PositionNumber: x.PositionNumber,
			OfficerName:    x.OfficerName,
			UnitCode:       x.UnitCode,
			UnitName:       x.UnitName,
		}
	}
	return out, nil
}
