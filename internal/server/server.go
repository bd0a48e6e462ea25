package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/api"
	"github.com/pageza/dietwise/backend/internal/middleware"
	"github.com/pageza/dietwise/backend/internal/service"
)

// Dependencies are the collaborators the HTTP surface is built from
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Auth        middleware.TokenValidator
	Profiles    service.IProfileService
	Meals       service.IMealService
	Adjustments service.IAdjustmentService
	Pipeline    api.Trigger
}

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New creates a new server instance with every route registered
func New(cfg *config.Config, deps Dependencies) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	auth := middleware.AuthMiddleware(deps.Auth)
	jobAuth := middleware.JobToken(cfg.JobToken)

	var limit gin.HandlerFunc
	if deps.Redis != nil && cfg.AIAdjustmentRateLimit > 0 {
		limit = middleware.NewAIAdjustmentRateLimiter(deps.Redis, cfg.AIAdjustmentRateLimit).RateLimitMiddleware()
	}

	root := &router.RouterGroup
	api.NewHealthHandler(deps.DB, deps.Redis).RegisterRoutes(root)
	api.NewSessionHandler().RegisterRoutes(root, auth)
	api.NewProfileHandler(deps.Profiles).RegisterRoutes(root, auth)
	api.NewMealHandler(deps.Meals).RegisterRoutes(root, auth, jobAuth)
	api.NewAdjustmentHandler(deps.Adjustments).RegisterRoutes(root, auth, limit)
	if deps.Pipeline != nil {
		api.NewJobsHandler(deps.Pipeline).RegisterRoutes(root, jobAuth)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Handler returns the HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
