// Package common provides shared HTTP response helpers and request
// binding for the web API.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skarim/finledger/pkg/domain"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes a standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes an RFC 9457 problem response. Optional args
// refine it: a string sets Detail, an int overrides the status derived
// from err, and any other value is attached as Errors.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, opt := range opts {
		switch v := opt.(type) {
		case string:
			pd.Detail = v
		case int:
			status = v
		default:
			pd.Errors = v
		}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) && pd.Errors == nil {
		pd.Errors = ve.Messages
	}

	pd.Status = status
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure it writes the error response and
// returns a non-nil error; handlers should return nil in that case.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
		return nil, err
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
		return nil, err
	}
	return &input, nil
}
