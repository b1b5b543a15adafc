package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/wallet"
)

// RegisterWalletRoutes wires the read-only views of the ledger behind mw.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler, mw ...fiber.Handler) {
	r.Get("/me", chain(mw, h.Me)...)
	r.Get("/transactions", chain(mw, h.Transactions)...)
	r.Get("/beneficiaries", chain(mw, h.Beneficiaries)...)
}
