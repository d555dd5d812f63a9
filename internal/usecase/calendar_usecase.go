package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
)

// CalendarQuery selects either a whole month or an explicit from/to range.
type CalendarQuery struct {
	Month    string
	From     string
	To       string
	UnitCode string
	Name     string
}

type CalendarView struct {
	From string               `json:"from"`
	To   string               `json:"to"`
	Days []roster.CalendarDay `json:"days"`
}

type CalendarUsecase struct {
	duties repository.DutyRepository
	logger *zap.Logger
}

func NewCalendarUsecase(duties repository.DutyRepository, logger *zap.Logger) *CalendarUsecase {
	return &CalendarUsecase{duties: duties, logger: logger.Named("calendar")}
}

func (q CalendarQuery) resolve() (string, string, error) {
	if strings.TrimSpace(q.Month) != "" {
		from, to, err := roster.MonthRange(q.Month)
		if err != nil {
			return "", "", err
		}
		return from.Format(roster.DateLayout), to.Format(roster.DateLayout), nil
	}
	if q.From == "" || q.To == "" {
		return "", "", roster.Validation("either month or both from and to are required")
	}
	from, err := roster.NormalizeDate(q.From)
	if err != nil {
		return "", "", err
	}
	to, err := roster.NormalizeDate(q.To)
	if err != nil {
		return "", "", err
	}
	if to < from {
		return "", "", roster.Validation("to %s is before from %s", to, from)
	}
	return from, to, nil
}

// GetScheduleView groups the assignments in range by date and shift.
func (u *CalendarUsecase) GetScheduleView(ctx context.Context, q CalendarQuery) (*CalendarView, error) {
	return u.view(ctx, q, repository.AssignmentFilter{UnitCode: strings.TrimSpace(q.UnitCode)})
}

// OfficerView is the calendar restricted to one officer's own assignments.
func (u *CalendarUsecase) OfficerView(ctx context.Context, positionNumber, month string) (*CalendarView, error) {
	if strings.TrimSpace(positionNumber) == "" {
		return nil, roster.Validation("position_number is required")
	}
	return u.view(ctx, CalendarQuery{Month: month}, repository.AssignmentFilter{PositionNumber: positionNumber})
}

func (u *CalendarUsecase) view(ctx context.Context, q CalendarQuery, filter repository.AssignmentFilter) (*CalendarView, error) {
	from, to, err := q.resolve()
	if err != nil {
		return nil, err
	}
	rows, err := u.duties.ListAssignments(ctx, from, to, filter)
	if err != nil {
		u.logger.Error("failed to load assignments", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	days, err := roster.BuildCalendar(rows, roster.CalendarFilter{
		UnitCode: strings.TrimSpace(q.UnitCode),
		Name:     strings.TrimSpace(q.Name),
	})
	if err != nil {
		return nil, err
	}
	return &CalendarView{From: from, To: to, Days: days}, nil
}
