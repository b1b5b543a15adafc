package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/congo-pay/pocketbank/internal/common"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrorHandler renders every handler error as {"error": kind, "message": text}.
// Domain errors are mapped through common.HTTPStatus; *fiber.Error keeps its
// own status code.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := common.HTTPStatus(err)
		kind := common.KindOf(err)
		message := err.Error()

		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
			kind = kindForStatus(fe.Code)
			message = fe.Message
		}

		if status >= http.StatusInternalServerError && logger != nil {
			logger.Error("request failed", slog.String("path", c.Path()), slog.Any("error", err))
		}
		return c.Status(status).JSON(errorBody{Error: kind, Message: message})
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return common.KindValidation
	case http.StatusUnauthorized:
		return common.KindAuth
	case http.StatusNotFound:
		return common.KindNotFound
	case http.StatusConflict:
		return "conflict"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return common.KindStorage
	default:
		if status >= http.StatusInternalServerError {
			return common.KindInternal
		}
		return "request_error"
	}
}
