package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/roster"
)

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func done(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

var statusByKind = map[roster.Kind]int{
	roster.KindValidation:  fiber.StatusBadRequest,
	roster.KindConstraint:  fiber.StatusUnprocessableEntity,
	roster.KindNotFound:    fiber.StatusNotFound,
	roster.KindConflict:    fiber.StatusConflict,
	roster.KindPersistence: fiber.StatusInternalServerError,
}

// fail writes err as a {success:false} envelope. Roster errors keep their
// kind and rule; anything else is an opaque 500 whose cause only goes to the log.
func fail(c *fiber.Ctx, err error) error {
	kind := roster.KindOf(err)
	status, known := statusByKind[kind]
	if !known || kind == roster.KindPersistence {
		middleware.LoggerFrom(c).Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	if !known {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "internal server error",
		})
	}

	body := fiber.Map{"success": false, "message": err.Error(), "kind": kind}
	if rule := roster.RuleOf(err); rule != "" {
		body["rule"] = rule
	}
	return c.Status(status).JSON(body)
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, roster.Validation("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, roster.Validation("invalid %s %q", key, raw)
	}
	return uint(id), nil
}
