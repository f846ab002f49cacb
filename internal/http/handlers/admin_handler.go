package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"brocante/internal/domain"
	applog "brocante/internal/log"
	"brocante/internal/repos"
	"brocante/internal/services"
	"brocante/internal/storage"
	"brocante/internal/validate"
)

type AdminHandler struct {
	Catalog  *services.CatalogService
	Order    *services.OrderService
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
	Uploader storage.Uploader
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	prods, err := h.Products.ListAll()
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	pending, _ := h.Orders.CountPending()
	total, _ := h.Orders.Count()
	return render(c, "admin_dashboard", fiber.Map{
		"Products":      prods,
		"OrderCount":    total,
		"PendingOrders": pending,
	})
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords, "Statuses": domain.OrderStatuses})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !ok || status == "" {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Order.SetStatus(id, status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin/orders")
}

// GET /admin/products/new
func (h *AdminHandler) NewProductForm(c *fiber.Ctx) error {
	return render(c, "admin_product_form", fiber.Map{
		"Categories": domain.Categories,
		"P":          domain.Product{StockStatus: domain.StockAvailable},
		"IsNew":      true,
	})
}

// GET /admin/products/:id/edit
func (h *AdminHandler) EditProductForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Article introuvable"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Article introuvable"})
	}
	return render(c, "admin_product_form", fiber.Map{
		"Categories": domain.Categories,
		"P":          p,
		"IsNew":      false,
	})
}

// productFromForm validates the shared create/edit form. All fields are
// required except dimensions, and at least one image URL must be present;
// this is the only place the image invariant is enforced.
func (h *AdminHandler) productFromForm(c *fiber.Ctx) (domain.Product, string) {
	var p domain.Product

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return p, "Veuillez indiquer un nom"
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return p, "Prix invalide"
	}
	desc := strings.TrimSpace(c.FormValue("description"))
	if desc == "" {
		return p, "Veuillez indiquer une description"
	}
	category := c.FormValue("category")
	if !domain.ValidCategory(category) {
		return p, "Catégorie invalide"
	}
	cond, ok := validate.Condition(c.FormValue("condition"))
	if !ok {
		return p, "Veuillez indiquer l'état"
	}

	var images []string
	for _, raw := range strings.Split(c.FormValue("images"), "\n") {
		if u := strings.TrimSpace(raw); u != "" {
			images = append(images, u)
		}
	}
	if len(images) == 0 {
		return p, "Au moins une image est requise"
	}

	status := c.FormValue("stock_status")
	if status != domain.StockSold {
		status = domain.StockAvailable
	}

	p = domain.Product{
		Name:        name,
		Price:       price,
		Description: desc,
		Category:    category,
		Condition:   cond,
		Dimensions:  validate.Dimensions(c.FormValue("dimensions")),
		StockStatus: status,
	}
	p.SetImages(images)
	return p, ""
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, errMsg := h.productFromForm(c)
	if errMsg != "" {
		return c.Status(400).Render("admin_product_form", fiber.Map{
			"Categories": domain.Categories, "P": p, "IsNew": true,
			"Err": errMsg, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	p.ID = uuid.NewString()
	if err := h.Products.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID})
	return c.Redirect("/admin")
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Article introuvable"})
	}
	if _, err := h.Catalog.Get(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Article introuvable"})
	}
	p, errMsg := h.productFromForm(c)
	if errMsg != "" {
		p.ID = id
		return c.Status(400).Render("admin_product_form", fiber.Map{
			"Categories": domain.Categories, "P": p, "IsNew": false,
			"Err": errMsg, "CSRFToken": c.Cookies("csrf_"),
		})
	}
	p.ID = id
	if err := h.Products.Update(p); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Une erreur est survenue, veuillez réessayer"})
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.Redirect("/admin")
}

// POST /admin/products/:id/delete. Immediate hard delete, no undo.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Products.Delete(id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin")
}

// POST /admin/products/:id/stock toggles available/sold.
func (h *AdminHandler) SetStockStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	status := c.FormValue("stock_status")
	if !ok || (status != domain.StockAvailable && status != domain.StockSold) {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.Products.SetStockStatus(id, status); err != nil {
		applog.Error(c, "admin.products.stock.fail", err, map[string]any{"product": id})
		return c.Status(400).SendString("could not update stock status")
	}
	applog.Audit(c, "admin.products.stock", map[string]any{"product": id, "status": status})
	return c.Redirect("/admin")
}

// POST /admin/uploads is a raw passthrough to object storage; returns the
// public URL the product form appends to its image list.
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "missing file"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "could not read file"})
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	key := "products/" + uuid.NewString() + ext
	contentType := fh.Header.Get("Content-Type")

	url, err := h.Uploader.Upload(c.Context(), key, contentType, f)
	if err != nil {
		applog.Error(c, "admin.upload.fail", err, map[string]any{"key": key})
		return c.Status(500).JSON(fiber.Map{"error": "upload failed"})
	}
	applog.Audit(c, "admin.upload", map[string]any{"key": key})
	return c.JSON(fiber.Map{"url": url})
}
