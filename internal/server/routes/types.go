package routes

import (
	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/metrics"
)

// Handlers contains all the route handlers
type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Health     *handlers.HealthHandler
	Plan       *handlers.PlanHandler
	Membership *handlers.MembershipHandler
	Room       *handlers.RoomHandler
	Complaint  *handlers.ComplaintHandler
	Attendance *handlers.AttendanceHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Auth *middleware.AuthMiddleware
}

// Options configures the global middleware chain
type Options struct {
	Clock     billing.Clock
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig
	HSTS      bool
	// Metrics is nil when metrics are disabled
	Metrics *metrics.Metrics
}
