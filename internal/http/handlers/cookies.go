package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"brocante/internal/cart"
)

const adminCookie = "admin_sid"

// Client state lives in durable cookies for a year; the server never
// mirrors it.
const clientStateMaxAge = 365 * 24 * int(time.Hour/time.Second)

func loadCart(c *fiber.Ctx) *cart.Store {
	return cart.Decode(c.Cookies(cart.CookieName))
}

func saveCart(c *fiber.Ctx, s *cart.Store) {
	c.Cookie(&fiber.Cookie{
		Name:     cart.CookieName,
		Value:    s.Encode(),
		Path:     "/",
		MaxAge:   clientStateMaxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearCart(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cart.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func loadFavorites(c *fiber.Ctx) *cart.Favorites {
	return cart.DecodeFavorites(c.Cookies(cart.FavoritesCookieName))
}

func saveFavorites(c *fiber.Ctx, f *cart.Favorites) {
	c.Cookie(&fiber.Cookie{
		Name:     cart.FavoritesCookieName,
		Value:    f.Encode(),
		Path:     "/",
		MaxAge:   clientStateMaxAge,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
