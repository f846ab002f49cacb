package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"brocante/internal/http/handlers"
	"brocante/internal/mail"
	"brocante/internal/repos"
	"brocante/internal/services"
)

type mailerStub struct {
	calls int
	fail  bool
	last  mail.Notification
}

func (m *mailerStub) SendOrderEmails(_ context.Context, n mail.Notification) error {
	m.calls++
	m.last = n
	if m.fail {
		return errors.New("smtp down")
	}
	return nil
}

const testAdminPassword = "s3cret"

// newTestApp wires the full route table against an in-memory database.
func newTestApp(t *testing.T, mailer mail.Mailer) (*fiber.App, *sqlx.DB) {
	t.Helper()

	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := &services.AuthService{
		Sessions: repos.NewSessionRepo(db),
		Password: testAdminPassword,
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/send-order-email"
		},
	}))

	deps := handlers.NewDeps(db, mailer, nil)

	app.Get("/", deps.ShopHandler.Home)
	app.Get("/shop", deps.ShopHandler.Shop)
	app.Get("/product/:id", deps.ShopHandler.Detail)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)

	app.Get("/favorites", deps.FavoritesHandler.List)
	app.Post("/favorites", deps.FavoritesHandler.Save)
	app.Post("/favorites/delete", deps.FavoritesHandler.Unsave)

	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)

	app.Post("/api/send-order-email", deps.NotifyHandler.SendOrderEmail)

	app.Get("/admin/login", authH.LoginForm)
	app.Post("/admin/login", authH.Login)
	app.Post("/admin/logout", authH.Logout)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/products/new", deps.AdminHandler.NewProductForm)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Get("/products/:id/edit", deps.AdminHandler.EditProductForm)
	admin.Post("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Post("/products/:id/delete", deps.AdminHandler.DeleteProduct)
	admin.Post("/products/:id/stock", deps.AdminHandler.SetStockStatus)

	return app, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken primes the csrf cookie with a throwaway GET.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}
