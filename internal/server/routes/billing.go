package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/api/middleware"
)

// SetupPlanRoutes configures the meal plan catalog
func SetupPlanRoutes(rg *gin.RouterGroup, plan *handlers.PlanHandler) {
	plans := rg.Group("/plans")
	{
		plans.GET("", plan.List)
		plans.POST("", middleware.RequireAdmin(), plan.Create)
		plans.PUT("/:id", middleware.RequireAdmin(), plan.Update)
		plans.DELETE("/:id", middleware.RequireAdmin(), plan.Delete)
	}
}

// SetupMembershipRoutes configures mess membership and billing routes
func SetupMembershipRoutes(rg *gin.RouterGroup, membership *handlers.MembershipHandler) {
	m := rg.Group("/membership")
	{
		m.GET("/me", membership.GetMine)
		m.PUT("/me", membership.SetMine)

		admin := m.Group("")
		admin.Use(middleware.RequireAdmin())
		admin.GET("", membership.ListPeriod)
		admin.GET("/summary", membership.Summary)
		admin.GET("/summary/export", membership.ExportSummary)
	}
}
