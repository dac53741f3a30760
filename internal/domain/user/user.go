// Package user holds the read model of portal users consumed by the ticket core.
// Accounts are managed elsewhere; this package only describes what tickets need.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/clientdesk/clientdesk/internal/shared/authorization"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID                 uint
	Role               authorization.UserRole
	Name               string
	Business           string
	Email              string
	ExternalCustomerID string
}

// DisplayName falls back to the email when no name is on file.
func (u *User) DisplayName() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	return u.Email
}

// Directory resolves users and partner assignments.
type Directory interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	ListByRole(ctx context.Context, role authorization.UserRole) ([]*User, error)
	// ListPartnersOfClient returns partners assigned to clientID.
	ListPartnersOfClient(ctx context.Context, clientID uint) ([]*User, error)
	// ListClientIDsOfPartner returns the clients partnerID is assigned to.
	ListClientIDsOfPartner(ctx context.Context, partnerID uint) ([]uint, error)
	IsPartnerOf(ctx context.Context, partnerID, clientID uint) (bool, error)
}
