package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/identity"
)

// Handler exposes the login endpoint.
type Handler struct {
	ids *identity.Service
	svc *Service
}

func NewHandler(ids *identity.Service, svc *Service) *Handler {
	return &Handler{ids: ids, svc: svc}
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	User        identity.User `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
}

// Login validates credentials and returns the user with a session token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	user, err := h.ids.Authenticate(c.UserContext(), identity.Credentials{PhoneNumber: req.PhoneNumber, Password: req.Password})
	if err != nil {
		return err
	}
	token, err := h.svc.Issue(user.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(loginResponse{User: identity.Public(user), AccessToken: token.AccessToken, ExpiresIn: token.ExpiresIn})
}
