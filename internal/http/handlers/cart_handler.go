package handlers

import (
	"github.com/gofiber/fiber/v2"

	"brocante/internal/cart"
	applog "brocante/internal/log"
	"brocante/internal/services"
	"brocante/internal/validate"
)

type CartHandler struct {
	Catalog *services.CatalogService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	s := loadCart(c)
	return render(c, "cart", fiber.Map{
		"Items": s.Items,
		"Total": s.TotalPrice(),
		"Count": s.ItemCount(),
	})
}

// Add merges a product into the cart with its denormalized snapshot
// captured now; later price edits do not reach existing carts.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	p, err := h.Catalog.Get(pid)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}

	s := loadCart(c)
	s.AddItem(cart.SnapshotOf(p), qty)
	saveCart(c, s)

	applog.Info(c, "cart.add", map[string]any{"product": pid, "qty": qty})
	return c.Redirect("/cart")
}

// Update sets a line quantity; zero or less removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := 0
	if raw := c.FormValue("qty"); raw != "" && raw != "0" {
		qty = validate.Qty(raw)
	}

	s := loadCart(c)
	s.UpdateQuantity(pid, qty)
	saveCart(c, s)
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	s := loadCart(c)
	s.RemoveItem(pid)
	saveCart(c, s)
	return c.Redirect("/cart")
}
