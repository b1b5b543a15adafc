package wallet

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/history"
	"github.com/congo-pay/pocketbank/internal/middleware"
	"github.com/congo-pay/pocketbank/internal/records"
)

const maxPageSize = 100

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type historyEntry struct {
	records.TransactionEntry
	Signed string `json:"signedAmount"`
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(profile)
}

// Transactions returns the sorted transaction history.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.History(c.UserContext(), middleware.UserID(c), q)
	if err != nil {
		return err
	}
	entries := make([]historyEntry, len(page.Entries))
	for i, e := range page.Entries {
		entries[i] = historyEntry{TransactionEntry: e, Signed: history.Signed(e).String()}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"transactions": entries,
		"total":        page.Total,
	})
}

// Beneficiaries returns the aggregated transfer recipients.
func (h *Handler) Beneficiaries(c *fiber.Ctx) error {
	views, err := h.service.Beneficiaries(c.UserContext(), middleware.UserID(c), strings.TrimSpace(c.Query("q")))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"beneficiaries": views})
}

func parseQuery(c *fiber.Ctx) (history.Query, error) {
	q := history.Query{
		Search: strings.TrimSpace(c.Query("q")),
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	if q.Limit < 0 || q.Offset < 0 {
		return history.Query{}, common.Validationf("limit and offset must not be negative")
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	switch t := records.TxType(c.Query("type")); t {
	case "":
	case records.TypeRecharge, records.TypeWithdraw, records.TypeTransfer:
		q.Type = t
	default:
		return history.Query{}, common.Validationf("unknown transaction type %q", t)
	}
	return q, nil
}
