package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/api/middleware"
)

// SetupUserRoutes configures user management routes
func SetupUserRoutes(rg *gin.RouterGroup, user *handlers.UserHandler) {
	users := rg.Group("/users")
	{
		users.GET("", middleware.RequireAdmin(), user.List)
		users.GET("/me", user.Me)
		users.GET("/:id", user.Get)
		users.PUT("/:id", user.Update)
		users.DELETE("/:id", middleware.RequireAdmin(), user.Delete)
		users.PUT("/:id/role", middleware.RequireAdmin(), user.SetRole)
	}
}
