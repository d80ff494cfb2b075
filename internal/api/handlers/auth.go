package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/auth"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type AuthHandler struct {
	authService  *service.AuthService
	auditService *service.AuditService
}

func NewAuthHandler(authService *service.AuthService, auditService *service.AuditService) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req auth.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAuthEvent(service.AuditEventSignup, user, utils.GetRealIP(c))

	utils.HandleCreated(c, authResponse(user, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			h.auditService.LogFailedAuthAttempt(req.Email, utils.GetRealIP(c), "invalid credentials")
		}
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAuthEvent(service.AuditEventLogin, user, utils.GetRealIP(c))

	utils.HandleSuccess(c, authResponse(user, token))
}

// GoogleSignIn exchanges a Firebase ID token for a session token.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req auth.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	user, token, err := h.authService.GoogleSignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			h.auditService.LogFailedAuthAttempt("", utils.GetRealIP(c), "invalid Google ID token")
		}
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAuthEvent(service.AuditEventGoogleSignIn, user, utils.GetRealIP(c))

	utils.HandleSuccess(c, authResponse(user, token))
}

func (h *AuthHandler) Profile(c *gin.Context) {
	utils.HandleSuccess(c, mapper.UserToUserResponse(middleware.CurrentUser(c)))
}

func authResponse(user *models.User, token string) auth.AuthResponse {
	return auth.AuthResponse{User: mapper.UserToUserResponse(user), Token: token}
}
