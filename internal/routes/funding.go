package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/funding"
)

// RegisterFundingRoutes wires recharge and withdrawal endpoints behind mw.
func RegisterFundingRoutes(r fiber.Router, h *funding.Handler, mw ...fiber.Handler) {
	r.Post("/wallet/recharge", chain(mw, h.Recharge)...)
	r.Post("/wallet/withdraw", chain(mw, h.Withdraw)...)
}
