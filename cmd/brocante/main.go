package main

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"brocante/internal/config"
	"brocante/internal/http/handlers"
	applog "brocante/internal/log"
	"brocante/internal/mail"
	"brocante/internal/repos"
	"brocante/internal/services"
	"brocante/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := applog.Init(cfg.Server.Env); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer applog.Sync()

	db, err := repos.OpenDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	sessRepo := repos.NewSessionRepo(db)
	authSvc := &services.AuthService{
		Sessions: sessRepo,
		Password: cfg.Admin.Password,
		Hash:     cfg.Admin.PasswordHash,
	}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Email relay (optional; checkout still works without it)
	var mailer mail.Mailer
	if cfg.Mail.APIKey != "" && cfg.Mail.AdminEmail != "" {
		mailer = mail.NewResendMailer(cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.AdminEmail, cfg.Site.BaseURL)
	} else {
		log.Printf("[mail] RESEND_API_KEY/ADMIN_EMAIL not set; order emails disabled")
	}

	// Image storage: S3-compatible bucket when configured, local media dir otherwise
	var uploader storage.Uploader
	if cfg.Storage.Bucket != "" {
		s3up, err := storage.NewS3Storage(cfg.Storage)
		if err != nil {
			log.Fatal(err)
		}
		uploader = s3up
	} else {
		uploader = storage.NewLocalStorage(cfg.Storage.MediaDir, cfg.Site.BaseURL)
		log.Printf("[storage] no bucket configured; uploading to %s", cfg.Storage.MediaDir)
	}

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Une erreur est survenue, veuillez réessayer",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Une erreur est survenue, veuillez réessayer")
			}
			return nil
		},
	})
	// Image uploads pass through this body
	app.Server().MaxRequestBodySize = 10 << 20 // 10 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/media/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		Next: func(c *fiber.Ctx) bool {
			// The notification endpoint takes JSON from server-side callers.
			return c.Path() == "/api/send-order-email"
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Vérification de sécurité échouée. Veuillez rafraîchir la page."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.Storage.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/media/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, mailer, uploader)

	// Storefront
	app.Get("/", deps.ShopHandler.Home)
	app.Get("/shop", deps.ShopHandler.Shop)
	app.Get("/product/:id", deps.ShopHandler.Detail)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)

	// Favorites
	app.Get("/favorites", deps.FavoritesHandler.List)
	app.Post("/favorites", deps.FavoritesHandler.Save)
	app.Post("/favorites/delete", deps.FavoritesHandler.Unsave)

	// Checkout & orders
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order/:id", deps.OrderHandler.View)

	// Notification relay
	app.Post("/api/send-order-email", deps.NotifyHandler.SendOrderEmail)

	// Static pages
	app.Get("/about", deps.PagesHandler.About)
	app.Get("/contact", deps.PagesHandler.Contact)
	app.Get("/shipping", deps.PagesHandler.Shipping)
	app.Get("/privacy", deps.PagesHandler.Privacy)

	// Admin auth (login throttled)
	app.Get("/admin/login", authH.LoginForm)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("admin_login", fiber.Map{"Err": "Trop de tentatives. Veuillez réessayer plus tard."})
		},
	}), authH.Login)
	app.Post("/admin/logout", authH.Logout)

	// Admin back-office
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
	admin.Post("/uploads", deps.AdminHandler.Upload)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page introuvable"})
	})

	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
