package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/common"
	"github.com/congo-pay/pocketbank/internal/logging"
)

func TestErrorHandlerBody(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logging.Discard())})
	app.Get("/validation", func(c *fiber.Ctx) error { return common.Validationf("amount must be positive") })
	app.Get("/missing", func(c *fiber.Ctx) error { return common.NotFoundf("user x") })
	app.Get("/storage", func(c *fiber.Ctx) error { return common.Storage("save users", common.ErrStorage) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTooManyRequests, "slow down") })

	tests := []struct {
		path   string
		status int
		kind   string
	}{
		{"/validation", fiber.StatusBadRequest, common.KindValidation},
		{"/missing", fiber.StatusNotFound, common.KindNotFound},
		{"/storage", fiber.StatusServiceUnavailable, common.KindStorage},
		{"/fiber", fiber.StatusTooManyRequests, "rate_limited"},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("app.Test(%s): %v", tt.path, err)
		}
		var body errorBody
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode %s: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status || body.Error != tt.kind || body.Message == "" {
			t.Errorf("%s: got %d %+v, want %d %s", tt.path, resp.StatusCode, body, tt.status, tt.kind)
		}
	}
}
