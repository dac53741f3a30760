package authorization

// UserRole is the role carried by an authenticated caller.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RolePartner UserRole = "partner"
	RoleClient  UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role answers tickets on behalf of the business.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RolePartner
}

func (r UserRole) IsClient() bool {
	return r == RoleClient
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RolePartner, RoleClient:
		return true
	}
	return false
}

// ParseUserRole falls back to the least privileged role for unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleClient
}

// Principal is the verified identity of a caller.
type Principal struct {
	UserID      uint
	Role        UserRole
	DisplayName string
}
