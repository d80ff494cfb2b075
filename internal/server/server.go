package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/handlers"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/api/validation"
	"github.com/osa911/hostelhub/internal/auth"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/config"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/osa911/hostelhub/internal/repository"
	"github.com/osa911/hostelhub/internal/server/routes"
	"github.com/osa911/hostelhub/internal/service"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Dependencies are the collaborators the server is built from
type Dependencies struct {
	Repos *repository.Set
	// DB is pinged by the health check; nil for in-memory storage
	DB       handlers.Pinger
	Verifier service.IdentityVerifier
	// Notifier is told about new complaints; may be nil
	Notifier service.ComplaintNotifier
	// Metrics is nil when metrics are disabled
	Metrics *metrics.Metrics
	Clock   billing.Clock
}

// Services are the application services behind the HTTP handlers
type Services struct {
	Auth       *service.AuthService
	User       *service.UserService
	Plan       *service.PlanService
	Membership *service.MembershipService
	Room       *service.RoomService
	Complaint  *service.ComplaintService
	Attendance *service.AttendanceService
	Audit      *service.AuditService
}

// Server represents the HTTP server
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	services *Services
	logger   *logging.Logger
}

// NewServices wires every service to its repositories
func NewServices(cfg *config.Config, deps Dependencies) *Services {
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	return &Services{
		Auth:       service.NewAuthService(deps.Repos.Users, tokens, deps.Verifier),
		User:       service.NewUserService(deps.Repos.Users),
		Plan:       service.NewPlanService(deps.Repos.Plans),
		Membership: service.NewMembershipService(deps.Repos, deps.Metrics),
		Room:       service.NewRoomService(deps.Repos.Rooms, deps.Repos.Users),
		Complaint:  service.NewComplaintService(deps.Repos.Complaints, deps.Notifier),
		Attendance: service.NewAttendanceService(deps.Repos.Attendance),
		Audit:      service.NewAuditService(nil),
	}
}

// NewServer creates a new server instance with all routes registered
func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	logger := logging.GetLogger()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	// Gin's own logger is replaced by the request logging middleware
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	if cfg.OTLPEndpoint != "" {
		router.Use(otelgin.Middleware("hostelhub"))
	}
	routes.SetupGlobalMiddleware(router, logger, routes.Options{
		Clock: deps.Clock,
		CORS: middleware.CORSConfig{
			Development:    cfg.IsDevelopment(),
			AllowedOrigins: cfg.AllowedOrigins,
		},
		RateLimit: middleware.RateLimitConfig{
			RPS:   cfg.RateLimitRPS,
			Burst: cfg.RateLimitBurst,
		},
		HSTS:    cfg.IsProduction(),
		Metrics: deps.Metrics,
	})

	services := NewServices(cfg, deps)
	h := &routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.Auth, services.Audit),
		User:       handlers.NewUserHandler(services.User, services.Audit),
		Health:     handlers.NewHealthHandler(deps.DB, cfg.StorageDriver),
		Plan:       handlers.NewPlanHandler(services.Plan, services.Audit),
		Membership: handlers.NewMembershipHandler(services.Membership),
		Room:       handlers.NewRoomHandler(services.Room, services.Audit),
		Complaint:  handlers.NewComplaintHandler(services.Complaint),
		Attendance: handlers.NewAttendanceHandler(services.Attendance),
	}
	m := &routes.Middleware{
		Auth: middleware.NewAuthMiddleware(services.Auth),
	}
	routes.Setup(router, h, m)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	return &Server{
		router:   router,
		cfg:      cfg,
		services: services,
		logger:   logger,
	}, nil
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Services exposes the application services, e.g. for startup seeding
func (s *Server) Services() *Services {
	return s.services
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
