package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CurrentRole returns the role claim stored by Auth, or "".
func CurrentRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}

// Role admits only callers whose token role is one of allowed. Matching ignores
// case and surrounding spaces.
func Role(allowed ...string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		set[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role := CurrentRole(c)
		if role == "" {
			return deny(c, fiber.StatusForbidden, "access denied: no role in token")
		}
		if _, ok := set[strings.ToLower(strings.TrimSpace(role))]; !ok {
			return deny(c, fiber.StatusForbidden, "access denied: role "+role+" is not allowed")
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
