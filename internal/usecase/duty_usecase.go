package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
)

// ScheduleInput is the caller's working selection for one schedule instance.
type ScheduleInput struct {
	ScheduleID       uint
	DutyDate         string
	Period           string
	SelectedUnits    []string
	ManualPositions  []string
	RemovedPositions []string
	HeadUnitCode     string
	Notes            string
}

type ComposeResult struct {
	DutyDate           string                `json:"duty_date"`
	Period             roster.Period         `json:"period"`
	Classification     roster.Classification `json:"classification"`
	Included           []roster.Entry        `json:"included"`
	Removed            []roster.Entry        `json:"removed"`
	HeadUnitCandidates []string              `json:"head_unit_candidates"`
}

type DutyUsecase struct {
	duties   repository.DutyRepository
	members  repository.MembershipRepository
	officers repository.OfficerRepository
	holidays repository.HolidayRepository
	logger   *zap.Logger
}

func NewDutyUsecase(
	duties repository.DutyRepository,
	members repository.MembershipRepository,
	officers repository.OfficerRepository,
	holidays repository.HolidayRepository,
	logger *zap.Logger,
) *DutyUsecase {
	return &DutyUsecase{
		duties:   duties,
		members:  members,
		officers: officers,
		holidays: holidays,
		logger:   logger.Named("duty"),
	}
}

// Classify resolves the shift category of a date and period against the
// registered holidays.
func (u *DutyUsecase) Classify(ctx context.Context, date, period string) (time.Time, roster.Period, roster.Classification, error) {
	day, err := roster.ParseDate(date)
	if err != nil {
		return time.Time{}, "", roster.Classification{}, err
	}
	p, err := roster.ParsePeriod(period)
	if err != nil {
		return time.Time{}, "", roster.Classification{}, err
	}
	key := day.Format(roster.DateLayout)
	listed, err := u.holidays.IsHoliday(ctx, key)
	if err != nil {
		return time.Time{}, "", roster.Classification{}, err
	}
	holidays := roster.HolidaySet{}
	if listed {
		holidays = roster.NewHolidaySet(key)
	}
	c, err := roster.Classify(day, holidays, p)
	return day, p, c, err
}

func cleanCodes(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func (u *DutyUsecase) compose(ctx context.Context, in ScheduleInput) (*ComposeResult, *roster.Roster, error) {
	day, period, class, err := u.Classify(ctx, in.DutyDate, in.Period)
	if err != nil {
		return nil, nil, err
	}
	selected := cleanCodes(in.SelectedUnits)

	memberships, err := u.members.GetByUnits(ctx, selected)
	if err != nil {
		return nil, nil, err
	}
	autos := make([]roster.OfficerRef, 0, len(memberships))
	for _, m := range memberships {
		ref := roster.OfficerRef{PositionNumber: m.PositionNumber}
		if m.UnitCode != nil {
			ref.UnitCode = *m.UnitCode
		}
		if m.Officer != nil {
			ref.Name = m.Officer.Name
		}
		autos = append(autos, ref)
	}

	manualPositions := cleanCodes(in.ManualPositions)
	found, err := u.officers.FindByPositionNumbers(ctx, manualPositions)
	if err != nil {
		return nil, nil, err
	}
	byPosition := make(map[string]model.Officer, len(found))
	for _, o := range found {
		byPosition[o.PositionNumber] = o
	}
	manuals := make([]roster.OfficerRef, 0, len(manualPositions))
	for _, p := range manualPositions {
		o, ok := byPosition[p]
		if !ok {
			return nil, nil, roster.Validation("officer %s is not in the personnel directory", p)
		}
		manuals = append(manuals, roster.OfficerRef{PositionNumber: p, Name: o.Name, UnitCode: o.HomeUnit()})
	}

	r := roster.Compose(roster.Selection{
		SelectedUnits:    selected,
		AutoOfficers:     autos,
		ManualOfficers:   manuals,
		RemovedPositions: in.RemovedPositions,
	})
	included := r.Included()
	return &ComposeResult{
		DutyDate:           day.Format(roster.DateLayout),
		Period:             period,
		Classification:     class,
		Included:           included,
		Removed:            r.Removed(),
		HeadUnitCandidates: roster.HeadUnitCandidates(selected, included),
	}, r, nil
}

// Preview composes the roster without writing anything.
func (u *DutyUsecase) Preview(ctx context.Context, in ScheduleInput) (*ComposeResult, error) {
	res, _, err := u.compose(ctx, in)
	return res, err
}

// SaveSchedule composes, validates and writes a schedule with one assignment
// per included officer.
func (u *DutyUsecase) SaveSchedule(ctx context.Context, in ScheduleInput) (*model.DutySchedule, error) {
	res, r, err := u.compose(ctx, in)
	if err != nil {
		u.logRejected(in, err)
		return nil, err
	}
	head := strings.TrimSpace(in.HeadUnitCode)
	if err := roster.CheckSubmission(r, cleanCodes(in.SelectedUnits), head); err != nil {
		u.logRejected(in, err)
		return nil, err
	}

	schedule := &model.DutySchedule{
		ID:            in.ScheduleID,
		DutyDate:      res.DutyDate,
		Period:        string(res.Period),
		HeadUnitCode:  head,
		ShiftCategory: string(res.Classification.Category),
		DayType:       string(res.Classification.DayType),
		Notes:         strings.TrimSpace(in.Notes),
	}
	assignments := make([]model.DutyAssignment, 0, len(res.Included))
	for _, e := range res.Included {
		unit := e.UnitCode
		if unit == "" {
			unit = head
		}
		assignments = append(assignments, model.DutyAssignment{
			DutyDate:       res.DutyDate,
			PositionNumber: e.PositionNumber,
			UnitCode:       unit,
			ShiftCategory:  schedule.ShiftCategory,
			DayType:        schedule.DayType,
		})
	}

	if err := u.duties.SaveSchedule(ctx, schedule, assignments); err != nil {
		if roster.KindOf(err) == roster.KindPersistence {
			u.logger.Error("schedule write rolled back",
				zap.String("duty_date", schedule.DutyDate),
				zap.String("period", schedule.Period),
				zap.String("head_unit_code", head),
				zap.Int("assignments", len(assignments)),
				zap.Error(err))
		} else {
			u.logRejected(in, err)
		}
		return nil, err
	}
	u.logger.Info("schedule saved",
		zap.Uint("schedule_id", schedule.ID),
		zap.String("duty_date", schedule.DutyDate),
		zap.String("period", schedule.Period),
		zap.String("shift_category", schedule.ShiftCategory),
		zap.Int("assignments", len(assignments)))
	return u.duties.GetScheduleByID(ctx, schedule.ID)
}

func (u *DutyUsecase) logRejected(in ScheduleInput, err error) {
	u.logger.Info("schedule rejected",
		zap.String("kind", string(roster.KindOf(err))),
		zap.String("duty_date", in.DutyDate),
		zap.String("period", in.Period),
		zap.String("head_unit_code", in.HeadUnitCode),
		zap.Error(err))
}

func (u *DutyUsecase) GetSchedule(ctx context.Context, id uint) (*model.DutySchedule, error) {
	return u.duties.GetScheduleByID(ctx, id)
}

// FindSchedule returns the schedule occupying a (date, period, head unit) slot,
// so a client can tell whether a submission will replace it.
func (u *DutyUsecase) FindSchedule(ctx context.Context, date, period, headUnitCode string) (*model.DutySchedule, error) {
	day, err := roster.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	p, err := roster.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	head := strings.TrimSpace(headUnitCode)
	if head == "" {
		return nil, roster.Validation("head_unit_code is required")
	}
	slot, err := u.duties.FindSlot(ctx, day, string(p), head)
	if err != nil {
		return nil, err
	}
	return u.duties.GetScheduleByID(ctx, slot.ID)
}

func (u *DutyUsecase) DeleteSchedule(ctx context.Context, id uint) error {
	if err := u.duties.DeleteSchedule(ctx, id); err != nil {
		if roster.KindOf(err) == roster.KindPersistence {
			u.logger.Error("schedule delete rolled back", zap.Uint("schedule_id", id), zap.Error(err))
		}
		return err
	}
	u.logger.Info("schedule deleted", zap.Uint("schedule_id", id))
	return nil
}
