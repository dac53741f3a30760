package authorization

import (
	"github.com/gin-gonic/gin"

	"github.com/clientdesk/clientdesk/internal/shared/constants"
	"github.com/clientdesk/clientdesk/internal/shared/errors"
	"github.com/clientdesk/clientdesk/internal/shared/utils"
)

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c.GetString(constants.ContextKeyUserRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("insufficient role"))
		c.Abort()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

func RequireStaff() gin.HandlerFunc {
	return RequireRole(RoleAdmin, RolePartner)
}

// PrincipalFromContext reads the identity stored by the auth middleware.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	raw, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return Principal{}, false
	}
	userID, ok := raw.(uint)
	if !ok || userID == 0 {
		return Principal{}, false
	}
	return Principal{
		UserID:      userID,
		Role:        UserRole(c.GetString(constants.ContextKeyUserRole)),
		DisplayName: c.GetString(constants.ContextKeyDisplayName),
	}, true
}
