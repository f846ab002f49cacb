package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "brocante/internal/log"
	"brocante/internal/repos"
	"brocante/internal/services"
	"brocante/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

// Checkout shows the shipping form. An empty cart never reaches the
// store: it bounces back to the cart page.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	s := loadCart(c)
	if s.Empty() {
		return c.Redirect("/cart")
	}
	return render(c, "checkout", fiber.Map{
		"Items": s.Items,
		"Total": s.TotalPrice(),
	})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	s := loadCart(c)
	if s.Empty() {
		return c.Redirect("/cart")
	}

	name, ok := validate.Name(c.FormValue("fullName"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "fullName"})
		return c.Status(400).Render("checkout", checkoutData(c, "Veuillez vérifier vos coordonnées"))
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(400).Render("checkout", checkoutData(c, "Adresse email invalide"))
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(400).Render("checkout", checkoutData(c, "Numéro de téléphone invalide"))
	}
	city, ok := validate.City(c.FormValue("city"))
	if !ok {
		return c.Status(400).Render("checkout", checkoutData(c, "Veuillez indiquer votre ville"))
	}
	address, ok := validate.Address(c.FormValue("address"))
	if !ok {
		return c.Status(400).Render("checkout", checkoutData(c, "Veuillez indiquer votre adresse"))
	}

	cust := services.Customer{
		FullName: name,
		Email:    email,
		Phone:    phone,
		City:     city,
		Address:  address,
		Notes:    validate.Notes(c.FormValue("notes")),
	}

	o, err := h.Order.Place(c.Context(), cust, s.Items)
	if err != nil {
		applog.Error(c, "order.place.fail", err, nil)
		return c.Status(500).Render("checkout", checkoutData(c, "Une erreur est survenue, veuillez réessayer"))
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID,
		"total":    o.Total.String(),
	})

	clearCart(c)
	return c.Redirect("/order/" + o.ID)
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Commande introuvable"})
	}
	o, err := h.Repo.Get(oid)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Commande introuvable"})
	}
	return render(c, "order", fiber.Map{"Order": o, "Items": o.Items()})
}

func checkoutData(c *fiber.Ctx, errMsg string) fiber.Map {
	s := loadCart(c)
	return fiber.Map{
		"Items":     s.Items,
		"Total":     s.TotalPrice(),
		"Err":       errMsg,
		"CSRFToken": c.Cookies("csrf_"),
		"CartCount": s.ItemCount(),
	}
}
