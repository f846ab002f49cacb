package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "brocante/internal/log"
	"brocante/internal/services"
)

// RequireAdmin gates the back-office behind a live admin session.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(adminCookie)
		if sid == "" {
			return c.Redirect("/admin/login")
		}
		if !auth.IsAdmin(sid) {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Redirect("/admin/login")
		}
		c.Locals("admin", true)
		return c.Next()
	}
}
