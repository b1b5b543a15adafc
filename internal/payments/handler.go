package payments

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/identity"
	"github.com/congo-pay/pocketbank/internal/ledger"
	"github.com/congo-pay/pocketbank/internal/middleware"
	"github.com/congo-pay/pocketbank/internal/money"
	"github.com/congo-pay/pocketbank/internal/records"
)

// Handler exposes payment endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	RecipientID   string      `json:"recipientId"`
	RecipientName string      `json:"recipientName"`
	Amount        money.Input `json:"amount"`
}

type prepaidRequest struct {
	Operator    string      `json:"operator"`
	PhoneNumber string      `json:"phoneNumber"`
	Amount      money.Input `json:"amount"`
}

type paymentResponse struct {
	User        identity.User            `json:"user"`
	Transaction records.TransactionEntry `json:"transaction"`
}

// Catalog is the prepaid offer.
type Catalog struct {
	Operators []ledger.Operator `json:"operators"`
	Amounts   []money.Amount    `json:"amounts"`
}

// Transfer sends money from the authenticated user to a recipient.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Transfer(c.UserContext(), ledger.TransferInput{
		SenderID:      middleware.UserID(c),
		RecipientID:   req.RecipientID,
		RecipientName: req.RecipientName,
		Amount:        string(req.Amount),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(paymentResponse{User: identity.Public(res.Sender), Transaction: lastEntry(res.Sender)})
}

// Prepaid buys prepaid credit for a mobile line.
func (h *Handler) Prepaid(c *fiber.Ctx) error {
	var req prepaidRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	u, err := h.service.Prepaid(c.UserContext(), ledger.PrepaidInput{
		UserID:      middleware.UserID(c),
		Operator:    req.Operator,
		PhoneNumber: req.PhoneNumber,
		Amount:      string(req.Amount),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(paymentResponse{User: identity.Public(u), Transaction: lastEntry(u)})
}

// PrepaidCatalog lists operators and denominations.
func (h *Handler) PrepaidCatalog(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(h.service.Catalog())
}
