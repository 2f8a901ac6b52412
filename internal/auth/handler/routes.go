package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/api/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.Logout)

	if h.cfg.TwoFALookupEnabled {
		auth.Post("/2fa-uri", h.LookupTwoFAURI)
	}

	// Bearer-protected endpoints
	requireAuth := h.RequireAuth()
	auth.Get("/me", requireAuth, h.Me)
	auth.Get("/history", requireAuth, h.History)
	auth.Get("/2fa", requireAuth, h.TwoFA)
	auth.Get("/2fa/qr", requireAuth, h.TwoFAQR)
	auth.Post("/2fa/regenerate", requireAuth, h.RegenerateTwoFA)
}
