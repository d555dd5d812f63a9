package handler

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/roster"
	"duty-roster-backend/internal/usecase"
)

type ShiftHandler struct {
	duty *usecase.DutyUsecase
}

func NewShiftHandler(duty *usecase.DutyUsecase) *ShiftHandler {
	return &ShiftHandler{duty: duty}
}

func (h *ShiftHandler) GetAll(c *fiber.Ctx) error {
	return ok(c, roster.Categories())
}

func (h *ShiftHandler) Classify(c *fiber.Ctx) error {
	day, period, class, err := h.duty.Classify(c.UserContext(), c.Query("date"), c.Query("period"))
	if err != nil {
		return fail(c, err)
	}
	category, _ := roster.LookupCategory(class.Category)
	return ok(c, fiber.Map{
		"date":           day.Format(roster.DateLayout),
		"period":         period,
		"shift_category": class.Category,
		"day_type":       class.DayType,
		"shift":          category,
	})
}
