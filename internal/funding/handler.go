package funding

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/middleware"
)

// Handler exposes HTTP endpoints for recharge and withdrawal.
type Handler struct {
	service *Service
}

// NewHandler constructs a funding handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Recharge credits the authenticated user's balance.
func (h *Handler) Recharge(c *fiber.Ctx) error {
	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Recharge(c.UserContext(), middleware.UserID(c), string(req.Amount))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toResponse(user))
}

// Withdraw debits the authenticated user's balance.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.service.Withdraw(c.UserContext(), middleware.UserID(c), string(req.Amount))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toResponse(user))
}
