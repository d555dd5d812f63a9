package handler

import (
	"github.com/gofiber/fiber/v2"

	"duty-roster-backend/internal/repository"
	"duty-roster-backend/internal/roster"
	"duty-roster-backend/internal/usecase"
)

type addMemberRequest struct {
	PositionNumber string `json:"position_number" validate:"required"`
	UnitCode       string `json:"unit_code"`
	Role           string `json:"role" validate:"required,oneof=member supervisor director"`
	SeniorityOrder int    `json:"seniority_order" validate:"gte=0"`
}

type updateMemberRequest struct {
	UnitCode       *string `json:"unit_code"`
	Role           *string `json:"role" validate:"omitempty,oneof=member supervisor director"`
	SeniorityOrder *int    `json:"seniority_order" validate:"omitempty,min=1"`
}

type HierarchyHandler struct {
	uc *usecase.HierarchyUsecase
}

func NewHierarchyHandler(uc *usecase.HierarchyUsecase) *HierarchyHandler {
	return &HierarchyHandler{uc: uc}
}

func (h *HierarchyHandler) GetHierarchy(c *fiber.Ctx) error {
	tree, err := h.uc.GetHierarchy(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, tree)
}

func (h *HierarchyHandler) ListMembers(c *fiber.Ctx) error {
	filter := repository.MembershipFilter{
		UnitCode: c.Query("unit_code"),
		Search:   c.Query("q"),
	}
	if role := c.Query("role"); role != "" {
		r, err := roster.ParseRole(role)
		if err != nil {
			return fail(c, err)
		}
		filter.Role = r
	}

	data, err := h.uc.ListMembers(c.UserContext(), filter)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}

func (h *HierarchyHandler) AddMember(c *fiber.Ctx) error {
	var req addMemberRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	row, err := h.uc.AddMember(c.UserContext(), usecase.AddMemberInput{
		PositionNumber: req.PositionNumber,
		UnitCode:       req.UnitCode,
		Role:           req.Role,
		SeniorityOrder: req.SeniorityOrder,
	})
	if err != nil {
		return fail(c, err)
	}
	return created(c, row)
}

func (h *HierarchyHandler) UpdateMember(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	var req updateMemberRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	row, err := h.uc.UpdateMember(c.UserContext(), id, usecase.MemberPatch{
		UnitCode:       req.UnitCode,
		Role:           req.Role,
		SeniorityOrder: req.SeniorityOrder,
	})
	if err != nil {
		return fail(c, err)
	}
	return ok(c, row)
}

func (h *HierarchyHandler) RemoveMember(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.RemoveMember(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return done(c, "membership removed")
}

// Availability answers whether a role can be taken in a unit, and which
// seniority is free next.
func (h *HierarchyHandler) Availability(c *fiber.Ctx) error {
	excluding, err := queryID(c, "excluding_id")
	if err != nil {
		return fail(c, err)
	}
	data, err := h.uc.CheckRoleAvailability(c.UserContext(), c.Query("role"), c.Query("unit_code"), excluding)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, data)
}
