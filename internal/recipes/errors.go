package recipes

import (
	"errors"
	"fmt"
	"strings"
)

// APIError reports a non-success response. Message holds the server's
// "error" envelope field and is empty when the body carried none.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// UserMessage converts err into inline text. Server-provided messages are
// returned verbatim; everything else gets the supplied fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}

// Describe picks inline text for a failed call: the server's message when
// it sent one, rejected for other non-success responses, and unexpected
// when no response was received or it could not be decoded.
func Describe(err error, rejected, unexpected string) string {
	if err == nil {
		return ""
	}
	if IsTransport(err) {
		return unexpected
	}
	return UserMessage(err, rejected)
}

// IsTransport reports whether err happened before a response was received
// or while decoding it.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr)
}

type errorEnvelope struct {
	Error string `json:"error"`
}
