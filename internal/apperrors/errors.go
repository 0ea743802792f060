package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation        Code = "validation_error"
	CodeUnsupportedFormat Code = "unsupported_format"
	CodeUnauthorized      Code = "unauthorized"
	CodeNotFound          Code = "not_found"
	CodeEmbeddingService  Code = "embedding_service_error"
	CodeProvider          Code = "provider_error"
	CodeConfiguration     Code = "configuration_error"
	CodeInternal          Code = "internal_error"
)

// Error is the taxonomy carried across service boundaries. Handlers map Code
// to an HTTP status; the message is surfaced verbatim to the caller.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "unknown error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

func Validation(msg string) *Error {
	return New(CodeValidation, msg)
}

func UnsupportedFormat(msg string) *Error {
	return New(CodeUnsupportedFormat, msg)
}

func Unauthorized(msg string) *Error {
	return New(CodeUnauthorized, msg)
}

func NotFound(msg string) *Error {
	return New(CodeNotFound, msg)
}

// EmbeddingService marks an upstream embedding failure; status/body come from
// the feature-extraction service response.
func EmbeddingService(status int, body string) *Error {
	return Newf(CodeEmbeddingService, "embedding service error (status=%d): %s", status, body)
}

// Provider marks an upstream LLM failure, no retry.
func Provider(provider string, body string) *Error {
	return Newf(CodeProvider, "%s API error: %s", provider, body)
}

// Configuration marks a missing credential, raised before any network call.
func Configuration(credential string) *Error {
	return Newf(CodeConfiguration, "API key %s not configured", credential)
}

func Internal(msg string) *Error {
	return New(CodeInternal, msg)
}

// CodeOf extracts the taxonomy code, defaulting to internal_error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae.Code
	}
	return CodeInternal
}

func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeEmbeddingService, CodeProvider:
		return http.StatusBadGateway
	case CodeConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
