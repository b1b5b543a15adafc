package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/payments"
)

// RegisterPaymentRoutes wires payment endpoints behind mw.
func RegisterPaymentRoutes(r fiber.Router, h *payments.Handler, mw ...fiber.Handler) {
	r.Post("/payments/transfer", chain(mw, h.Transfer)...)
	r.Post("/payments/prepaid", chain(mw, h.Prepaid)...)
	r.Get("/payments/prepaid/catalog", chain(mw, h.PrepaidCatalog)...)
}
