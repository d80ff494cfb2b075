package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/utils"
)

// RequireRole lets the request through only if the caller holds one of roles.
// This should be used AFTER RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			utils.HandleAPIError(c, nil, http.StatusUnauthorized, common.ErrCodeUnauthorized, "Authentication required")
			return
		}

		if !allowed[user.Role] {
			logging.GetLogger().Warn("User %s with role %s denied access to %s", user.ID, user.Role, c.FullPath())
			utils.HandleAPIError(c, nil, http.StatusForbidden, common.ErrCodeForbidden, "Access denied")
			return
		}

		c.Next()
	}
}

// RequireAdmin is RequireRole(models.RoleAdmin).
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}
