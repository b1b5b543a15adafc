package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/identity"
)

// RegisterIdentityRoutes wires registration.
func RegisterIdentityRoutes(r fiber.Router, h *identity.Handler) {
	r.Post("/auth/register", h.Register)
}
