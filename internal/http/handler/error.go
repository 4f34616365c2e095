package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cdnupload/internal/http/middleware"
)

// uploadError is a failure the upload pipeline classifies itself. Its message
// is safe to show to callers.
type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

func writeUploadError(c *fiber.Ctx, e *uploadError) error {
	return writeError(c, e.status, e.message)
}

// Checked in this order by UploadFile; the first match wins.
var (
	errAuthenticationMissing = &uploadError{fiber.StatusUnauthorized, "authentication token missing"}
	errAuthenticationInvalid = &uploadError{fiber.StatusUnauthorized, "user authentication failed"}
	errSubmissionInvalid     = &uploadError{fiber.StatusBadRequest, "file and user id are required"}
	errUserMismatch          = &uploadError{fiber.StatusForbidden, "user mismatch"}
)

const genericErrorMessage = "internal server error"

// errorPayload is the JSON body of every failed response.
type errorPayload struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
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

func writeError(c *fiber.Ctx, status int, message string) error {
	middleware.SetCORSHeaders(c)
	return c.Status(status).JSON(errorPayload{
		Error:     message,
		RequestID: requestIDFromCtx(c),
	})
}

// writeUnexpected renders a 500 carrying the failure's own message.
func writeUnexpected(c *fiber.Ctx, err error) error {
	msg := err.Error()
	if msg == "" {
		msg = genericErrorMessage
	}
	return writeError(c, fiber.StatusInternalServerError, msg)
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses. Anything not a *fiber.Error (panics included) becomes a generic 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "request body too large")
		default:
			return writeError(c, status, genericErrorMessage)
		}
	}
}
