package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/logging"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, m *Middleware) {
	logger := logging.GetLogger()

	SetupHealthRoutes(router, h.Health)

	v1 := router.Group("/api/v1")

	// Auth routes (signup, login and Google sign-in are public)
	SetupAuthRoutes(v1, h.Auth, m)

	protected := v1.Group("")
	protected.Use(m.Auth.RequireAuth())

	SetupUserRoutes(protected, h.User)
	SetupPlanRoutes(protected, h.Plan)
	SetupMembershipRoutes(protected, h.Membership)
	SetupRoomRoutes(protected, h.Room)
	SetupComplaintRoutes(protected, h.Complaint)
	SetupAttendanceRoutes(protected, h.Attendance)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, logger *logging.Logger, opts Options) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery(logger))
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	router.Use(middleware.CORS(opts.CORS))
	router.Use(middleware.SecurityHeaders(opts.HSTS))
	router.Use(middleware.RateLimitMiddleware(opts.RateLimit))
	router.Use(middleware.RequestClock(opts.Clock))
}
