package portal

import (
	"errors"
	"fmt"
)

// Error types returned by the API.
const (
	ErrorTypeValidation   = "validation_error"
	ErrorTypeNotFound     = "not_found"
	ErrorTypeUnauthorized = "unauthorized"
	ErrorTypeForbidden    = "forbidden"
	ErrorTypeConflict     = "conflict"
	ErrorTypeTicketClosed = "ticket_closed"
	ErrorTypeRateLimited  = "rate_limited"
)

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error: status=%d type=%s: %s (%s)", e.StatusCode, e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("api error: status=%d type=%s: %s", e.StatusCode, e.Type, e.Message)
}

func hasType(err error, t string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == t
}

// IsTicketClosed reports whether the ticket rejected a reply because it is closed.
func IsTicketClosed(err error) bool { return hasType(err, ErrorTypeTicketClosed) }

// IsRateLimited reports whether the caller must wait before retrying.
func IsRateLimited(err error) bool { return hasType(err, ErrorTypeRateLimited) }

func IsNotFound(err error) bool { return hasType(err, ErrorTypeNotFound) }

func IsForbidden(err error) bool { return hasType(err, ErrorTypeForbidden) }
