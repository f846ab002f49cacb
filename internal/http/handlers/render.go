package handlers

import (
	"github.com/gofiber/fiber/v2"

	"brocante/internal/cart"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Header badge: decode the cart cookie for the line count.
	if _, ok := data["CartCount"]; !ok {
		data["CartCount"] = cart.Decode(c.Cookies(cart.CookieName)).ItemCount()
	}
	if admin, ok := c.Locals("admin").(bool); ok && admin {
		data["Admin"] = true
	}
	if tok, ok := c.Locals("CSRFToken").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}
