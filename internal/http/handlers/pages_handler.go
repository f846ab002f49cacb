package handlers

import "github.com/gofiber/fiber/v2"

type PagesHandler struct{}

func (h *PagesHandler) About(c *fiber.Ctx) error    { return render(c, "about", nil) }
func (h *PagesHandler) Contact(c *fiber.Ctx) error  { return render(c, "contact", nil) }
func (h *PagesHandler) Shipping(c *fiber.Ctx) error { return render(c, "shipping", nil) }
func (h *PagesHandler) Privacy(c *fiber.Ctx) error  { return render(c, "privacy", nil) }
