package ticket

import "errors"

var (
	// ErrTicketClosed is returned for any reply or attachment on a closed ticket.
	ErrTicketClosed = errors.New("ticket is closed")
	// ErrNotPermitted is returned when the actor may not perform the action on this ticket.
	ErrNotPermitted = errors.New("action not permitted for this user")
	// ErrInvalidTransition is wrapped with the offending statuses.
	ErrInvalidTransition = errors.New("invalid status transition")
)
