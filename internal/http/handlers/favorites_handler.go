package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "brocante/internal/log"
	"brocante/internal/services"
	"brocante/internal/validate"
)

type FavoritesHandler struct {
	Catalog *services.CatalogService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	favs := loadFavorites(c)
	prods, err := h.Catalog.ResolveFavorites(favs.IDs)
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	return render(c, "favorites", fiber.Map{"Products": prods})
}

func (h *FavoritesHandler) Save(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	favs := loadFavorites(c)
	favs.Add(pid)
	saveFavorites(c, favs)

	back := c.Get("Referer")
	if back == "" {
		back = "/favorites"
	}
	return c.Redirect(back)
}

func (h *FavoritesHandler) Unsave(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	favs := loadFavorites(c)
	favs.Remove(pid)
	saveFavorites(c, favs)

	back := c.Get("Referer")
	if back == "" {
		back = "/favorites"
	}
	return c.Redirect(back)
}
