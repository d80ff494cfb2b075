package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/constants"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware verifies session tokens and attaches the caller's identity
type AuthMiddleware struct {
	auth   Authenticator
	logger *logging.Logger
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logging.GetLogger()}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// current user in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.HandleAPIError(c, nil, http.StatusUnauthorized, common.ErrCodeUnauthorized, "Not authorized, no token")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			utils.HandleAPIError(c, nil, http.StatusUnauthorized, common.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}

		user, err := m.auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			m.logger.Debug("Rejected token from %s: %v", utils.GetRealIP(c), err)
			utils.HandleServiceError(c, err)
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(constants.ContextKeyUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentActor returns the caller's identity for service calls.
func CurrentActor(c *gin.Context) service.Actor {
	user := CurrentUser(c)
	if user == nil {
		return service.Actor{}
	}
	return service.Actor{UserID: user.ID, Role: user.Role}
}
