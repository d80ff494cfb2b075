package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/handlers"
)

// SetupAuthRoutes configures authentication related routes
func SetupAuthRoutes(router *gin.RouterGroup, auth *handlers.AuthHandler, m *Middleware) {
	public := router.Group("/auth")
	{
		public.POST("/signup", auth.Signup)
		public.POST("/login", auth.Login)
		public.POST("/google", auth.GoogleSignIn)
	}

	router.GET("/auth/profile", m.Auth.RequireAuth(), auth.Profile)
}
