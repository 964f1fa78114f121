package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/konanyao/akwaba/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errUnauthorized returns a 401 error.
func errUnauthorized(c *fiber.Ctx, msg string) error {
	return newError(c, 401, "unauthorized", msg)
}

// errConflict returns a 409 error for business-rule rejections.
func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, 409, "conflict", msg)
}

// errBadGateway returns a 502 error for upstream failures.
func errBadGateway(c *fiber.Ctx, msg string) error {
	return newError(c, 502, "upstream_error", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// mapDomainError converts core errors into their HTTP shape: business-rule
// violations become 409s, auth problems 401s, upstream failures 502s with
// the server's most specific message.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrSessionExpired):
		return errUnauthorized(c, err.Error())
	case errors.Is(err, domain.ErrNotCancellable), errors.Is(err, domain.ErrAlreadyCancelled):
		return errConflict(c, err.Error())
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsAuthError() {
			return errUnauthorized(c, apiErr.Error())
		}
		return errBadGateway(c, apiErr.Error())
	}
	return errBadGateway(c, err.Error())
}
