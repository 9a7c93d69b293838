package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/locainsight/internal/core/domain"
	"github.com/samirrijal/locainsight/internal/pkg/logging"
)

// Public messages. Provider and parse diagnostics stay in the logs.
const (
	msgGenerationFailed = "Failed to generate valid recommendations. Please try again."
	msgRateLimited      = "Too many requests. Please try again in a moment."
	msgConfiguration    = "Internal server configuration error. Please contact support."
	msgInternal         = "Failed to fetch recommendations. Please try again later."
)

// APIError is a structured error response.
type APIError struct {
	Error     string `json:"error"` // Human-readable message
	Code      string `json:"code"`  // bad_request, rate_limited, generation_failed, internal_error
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Error:     message,
		Code:      code,
		Status:    status,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// classify maps a service error onto status, code and a message that is
// safe to show to the user.
func classify(err error) (int, string, string) {
	var inputErr *domain.InputError
	var genErr *domain.GenerationError
	switch {
	case errors.As(err, &inputErr):
		return fiber.StatusBadRequest, "bad_request", inputErr.Message
	case errors.As(err, &genErr):
		return fiber.StatusInternalServerError, "generation_failed", msgGenerationFailed
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "rate_limited", msgRateLimited
	case errors.Is(err, domain.ErrProviderAuth):
		return fiber.StatusInternalServerError, "internal_error", msgConfiguration
	default:
		return fiber.StatusInternalServerError, "internal_error", msgInternal
	}
}

// respondError logs err and writes the classified response.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	logError(c.UserContext(), status, code, err)
	return newError(c, status, code, msg)
}

func logError(ctx context.Context, status int, code string, err error) {
	log := logging.FromContext(ctx)
	switch {
	case status >= 500:
		log.Error("recommendation request failed", "code", code, "error", err)
	case status == fiber.StatusTooManyRequests:
		log.Warn("provider rate limited", "error", err)
	default:
		log.Info("recommendation request rejected", "code", code, "error", err)
	}
}
