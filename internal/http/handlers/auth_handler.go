package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "brocante/internal/log"
	"brocante/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "admin_login", fiber.Map{"Err": ""})
}

// Login checks the shared admin password. Failure leaves no cookie behind.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid, err := h.Auth.Login(c.FormValue("password"))
	if err != nil {
		applog.Security(c, "admin.login.fail", nil)
		return c.Status(fiber.StatusUnauthorized).Render("admin_login", fiber.Map{
			"Err": "Mot de passe incorrect", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // set true behind HTTPS
	})
	applog.Audit(c, "admin.login.success", nil)
	return c.Redirect("/admin")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies(adminCookie); sid != "" {
		_ = h.Auth.Logout(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     adminCookie,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "admin.logout", nil)
	return c.Redirect("/")
}
