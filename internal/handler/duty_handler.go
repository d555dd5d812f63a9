package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/export"
	"duty-roster-backend/internal/usecase"
)

type scheduleRequest struct {
	DutyDate         string   `json:"duty_date" validate:"required"`
	Period           string   `json:"period" validate:"required,oneof=day night"`
	SelectedUnits    []string `json:"selected_units"`
	ManualPositions  []string `json:"manual_positions"`
	RemovedPositions []string `json:"removed_positions"`
	HeadUnitCode     string   `json:"head_unit_code"`
	Notes            string   `json:"notes"`
}

func (r scheduleRequest) input(id uint) usecase.ScheduleInput {
	return usecase.ScheduleInput{
		ScheduleID:       id,
		DutyDate:         r.DutyDate,
		Period:           r.Period,
		SelectedUnits:    r.SelectedUnits,
		ManualPositions:  r.ManualPositions,
		RemovedPositions: r.RemovedPositions,
		HeadUnitCode:     r.HeadUnitCode,
		Notes:            r.Notes,
	}
}

type DutyHandler struct {
	duty     *usecase.DutyUsecase
	calendar *usecase.CalendarUsecase
}

func NewDutyHandler(duty *usecase.DutyUsecase, calendar *usecase.CalendarUsecase) *DutyHandler {
	return &DutyHandler{duty: duty, calendar: calendar}
}

// Compose previews the roster for a selection without saving it.
func (h *DutyHandler) Compose(c *fiber.Ctx) error {
	var req scheduleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	res, err := h.duty.Preview(c.UserContext(), req.input(0))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, res)
}

func (h *DutyHandler) CreateSchedule(c *fiber.Ctx) error {
	var req scheduleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	schedule, err := h.duty.SaveSchedule(c.UserContext(), req.input(0))
	if err != nil {
		return fail(c, err)
	}
	return created(c, schedule)
}

func (h *DutyHandler) ReplaceSchedule(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	var req scheduleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	schedule, err := h.duty.SaveSchedule(c.UserContext(), req.input(id))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, schedule)
}

func (h *DutyHandler) GetSchedule(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	schedule, err := h.duty.GetSchedule(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, schedule)
}

// FindSchedule looks a schedule up by its slot.
func (h *DutyHandler) FindSchedule(c *fiber.Ctx) error {
	schedule, err := h.duty.FindSchedule(c.UserContext(), c.Query("date"), c.Query("period"), c.Query("head_unit_code"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, schedule)
}

func (h *DutyHandler) DeleteSchedule(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.duty.DeleteSchedule(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return done(c, "schedule deleted")
}

func calendarQuery(c *fiber.Ctx) usecase.CalendarQuery {
	return usecase.CalendarQuery{
		Month:    c.Query("month"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		UnitCode: c.Query("unit_code"),
		Name:     c.Query("name"),
	}
}

func (h *DutyHandler) Calendar(c *fiber.Ctx) error {
	view, err := h.calendar.GetScheduleView(c.UserContext(), calendarQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, view)
}

func (h *DutyHandler) ExportCalendar(c *fiber.Ctx) error {
	view, err := h.calendar.GetScheduleView(c.UserContext(), calendarQuery(c))
	if err != nil {
		return fail(c, err)
	}
	data, err := export.CalendarWorkbook(view.Days)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=duty-calendar_%s_%s.xlsx", view.From, view.To))
	return c.Send(data)
}

// Mine lists the calling officer's own duties for a month.
func (h *DutyHandler) Mine(c *fiber.Ctx) error {
	position, _ := c.Locals("position_number").(string)
	view, err := h.calendar.OfficerView(c.UserContext(), position, c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, view)
}
