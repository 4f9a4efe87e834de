package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies the failures the chat endpoint can produce.
type Kind string

const (
	MissingInput          Kind = "missing_input"
	ProviderNotConfigured Kind = "provider_not_configured"
	UploadTimeout         Kind = "upload_timeout"
	UploadFailed          Kind = "upload_failed"
	InvalidState          Kind = "invalid_state"
	IncompleteState       Kind = "incomplete_state"
	MalformedModelOutput  Kind = "malformed_model_output"
	ConversionFailed      Kind = "conversion_failed"
)

// Error carries a failure kind, an HTTP status, and a user-visible message.
// All failures render as a single human-readable error string.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *Error) StatusCode() int {
	return e.Code
}

func newError(kind Kind, code int, message, detail string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Detail: detail}
}

func NewMissingInput() *Error {
	return newError(MissingInput, fiber.StatusBadRequest, "Message or file is required", "")
}

func NewProviderNotConfigured() *Error {
	return newError(ProviderNotConfigured, fiber.StatusInternalServerError, "Gemini API key not configured", "")
}

func NewUploadTimeout(detail string) *Error {
	return newError(UploadTimeout, fiber.StatusInternalServerError, "File processing timed out", detail)
}

func NewUploadFailed(detail string) *Error {
	return newError(UploadFailed, fiber.StatusInternalServerError, "File upload failed", detail)
}

func NewInvalidState(detail string) *Error {
	return newError(InvalidState, fiber.StatusBadRequest, "Invalid skills state", detail)
}

func NewIncompleteState(detail string) *Error {
	return newError(IncompleteState, fiber.StatusBadRequest, "All questions must be answered before analysis", detail)
}

func NewMalformedModelOutput(detail string) *Error {
	return newError(MalformedModelOutput, fiber.StatusInternalServerError, "Could not extract structured output from model response", detail)
}

func NewConversionFailed(detail string) *Error {
	return newError(ConversionFailed, fiber.StatusBadRequest, "Could not convert document to text", detail)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
