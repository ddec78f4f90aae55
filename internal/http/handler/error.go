package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"pdfdocx/internal/convert"
	"pdfdocx/internal/http/middleware"
	"pdfdocx/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_MODE", "CONVERSION_FAILED")
// - message: human-readable message safe to show to users
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps conversion service errors onto the HTTP error taxonomy.
// Unknown errors never leak their text.
func writeServiceError(c *fiber.Ctx, err error) error {
	var ve *convert.ValidationError
	switch {
	case errors.As(err, &ve):
		return writeError(c, fiber.StatusBadRequest, validationCode(ve), ve.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return writeError(c, fiber.StatusGatewayTimeout, "TIMEOUT", "conversion timed out")
	case convert.IsConversion(err):
		return writeError(c, fiber.StatusUnprocessableEntity, "CONVERSION_FAILED", err.Error())
	case errors.Is(err, service.ErrUnreadablePDF):
		return writeError(c, fiber.StatusUnprocessableEntity, "UNREADABLE_PDF", err.Error())
	case errors.Is(err, service.ErrHistoryDisabled):
		return writeError(c, fiber.StatusNotFound, "HISTORY_DISABLED", "conversion history is disabled")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "conversion not found")
	case errors.Is(err, service.ErrNotArchived):
		return writeError(c, fiber.StatusNotFound, "NOT_ARCHIVED", "conversion result is not available for download")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func validationCode(ve *convert.ValidationError) string {
	switch {
	case errors.Is(ve, convert.ErrEmptyDocument):
		return "EMPTY_DOCUMENT"
	case ve.Field == "mode":
		return "INVALID_MODE"
	case ve.Field == "page range":
		return "INVALID_PAGE_RANGE"
	default:
		return "BAD_REQUEST"
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "uploaded file is too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
