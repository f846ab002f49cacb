package handlers

import (
	"github.com/gofiber/fiber/v2"

	"brocante/internal/domain"
	applog "brocante/internal/log"
	"brocante/internal/repos"
	"brocante/internal/services"
	"brocante/internal/validate"
)

type ShopHandler struct {
	Catalog *services.CatalogService
}

func (h *ShopHandler) Home(c *fiber.Ctx) error {
	prods, err := h.Catalog.Featured(8)
	if err != nil {
		applog.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	return render(c, "home", fiber.Map{"Products": prods, "Categories": domain.Categories})
}

// Shop renders the filtered catalog. All filters compose conjunctively and
// are delegated to the store query.
func (h *ShopHandler) Shop(c *fiber.Ctx) error {
	f := repos.Filter{
		Query: validate.Q(c.Query("q")),
		Sort:  c.Query("sort", "newest"),
	}
	if cat := c.Query("category"); cat != "" && domain.ValidCategory(cat) {
		f.Category = cat
	}
	if min, ok := validate.OptionalPrice(c.Query("minPrice")); ok {
		f.MinPrice = min
	}
	if max, ok := validate.OptionalPrice(c.Query("maxPrice")); ok {
		f.MaxPrice = max
	}

	prods, err := h.Catalog.List(f)
	if err != nil {
		applog.Error(c, "shop.list", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}

	return render(c, "shop", fiber.Map{
		"Products":   prods,
		"Count":      len(prods),
		"Categories": domain.Categories,
		"Q":          f.Query,
		"Category":   f.Category,
		"MinPrice":   c.Query("minPrice"),
		"MaxPrice":   c.Query("maxPrice"),
		"Sort":       f.Sort,
	})
}

func (h *ShopHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Cet article n'est plus disponible"})
	}
	favs := loadFavorites(c)
	return render(c, "product", fiber.Map{"P": p, "Favorite": favs.Has(p.ID)})
}
