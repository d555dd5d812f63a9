package handler

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/model"
	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
)

type holidayRequest struct {
	Date        string `json:"date" validate:"required"`
	Description string `json:"description" validate:"max=255"`
}

type HolidayHandler struct {
	repo repository.HolidayRepository
}

func NewHolidayHandler(repo repository.HolidayRepository) *HolidayHandler {
	return &HolidayHandler{repo: repo}
}

func (h *HolidayHandler) GetAll(c *fiber.Ctx) error {
	ctx := c.UserContext()
	var (
		data []model.Holiday
		err  error
	)
	if month := c.Query("month"); month != "" {
		from, to, rerr := roster.MonthRange(month)
		if rerr != nil {
			return fail(c, rerr)
		}
		data, err = h.repo.GetInRange(ctx, from.Format(roster.DateLayout), to.Format(roster.DateLayout))
	} else {
		data, err = h.repo.GetAll(ctx)
	}
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}

func (h *HolidayHandler) Create(c *fiber.Ctx) error {
	var req holidayRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	date, err := roster.NormalizeDate(req.Date)
	if err != nil {
		return fail(c, err)
	}

	holiday := model.Holiday{Date: date, Description: req.Description}
	if err := h.repo.Create(c.UserContext(), &holiday); err != nil {
		return fail(c, err)
	}
	return created(c, holiday)
}

func (h *HolidayHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	var req holidayRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	date, err := roster.NormalizeDate(req.Date)
	if err != nil {
		return fail(c, err)
	}

	holiday, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	holiday.Date = date
	holiday.Description = req.Description

	if err := h.repo.Update(c.UserContext(), holiday); err != nil {
		return fail(c, err)
	}
	return ok(c, holiday)
}

func (h *HolidayHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.repo.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return done(c, "holiday deleted")
}
