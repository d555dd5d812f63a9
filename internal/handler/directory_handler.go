package handler

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/repository"
)

const officerSearchLimit = 50

// DirectoryHandler exposes the read-only personnel directory and unit catalog
// used when picking officers and units for a roster.
type DirectoryHandler struct {
	officers repository.OfficerRepository
	units    repository.UnitRepository
}

func NewDirectoryHandler(officers repository.OfficerRepository, units repository.UnitRepository) *DirectoryHandler {
	return &DirectoryHandler{officers: officers, units: units}
}

func (h *DirectoryHandler) SearchOfficers(c *fiber.Ctx) error {
	data, err := h.officers.Search(c.UserContext(), c.Query("q"), officerSearchLimit)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}

func (h *DirectoryHandler) GetUnits(c *fiber.Ctx) error {
	data, err := h.units.GetAll(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}
