package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
)

// SetupRoomRoutes configures room listing and allocation
func SetupRoomRoutes(rg *gin.RouterGroup, room *handlers.RoomHandler) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", room.List)
		rooms.POST("", middleware.RequireAdmin(), room.Create)
		rooms.PUT("/:id/assign", middleware.RequireAdmin(), room.Assign)
	}
}

// SetupComplaintRoutes configures complaint filing and triage
func SetupComplaintRoutes(rg *gin.RouterGroup, complaint *handlers.ComplaintHandler) {
	student := middleware.RequireRole(models.RoleStudent)

	complaints := rg.Group("/complaints")
	{
		complaints.POST("", student, complaint.Create)
		complaints.GET("/me", student, complaint.ListMine)
		complaints.GET("", middleware.RequireAdmin(), complaint.List)
		complaints.PUT("/:id", middleware.RequireAdmin(), complaint.UpdateStatus)
	}
}

// SetupAttendanceRoutes configures daily attendance
func SetupAttendanceRoutes(rg *gin.RouterGroup, attendance *handlers.AttendanceHandler) {
	student := middleware.RequireRole(models.RoleStudent)

	a := rg.Group("/attendance")
	{
		a.POST("/mark", student, attendance.Mark)
		a.GET("/me", student, attendance.ListMine)
		a.GET("", middleware.RequireAdmin(), attendance.List)
	}
}
