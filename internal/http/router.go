// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, compression,
// CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; BuildRouter is a pure function of
//     its configuration and services, so tests can construct an engine with
//     stub services and no globals beyond Prometheus collectors
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/config"
	"github.com/summitlog/go-crag-backend/internal/domain"
	"github.com/summitlog/go-crag-backend/internal/http/handlers"
	"github.com/summitlog/go-crag-backend/internal/http/middleware"
	"github.com/summitlog/go-crag-backend/internal/repo"
	"github.com/summitlog/go-crag-backend/internal/services"
)

// routeRepoShim adapts the repository free functions to the services.RouteRepo
// interface expected by the RouteService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type routeRepoShim struct{}

// CreateRoute proxies repo.CreateRoute.
func (routeRepoShim) CreateRoute(ctx context.Context, db *gorm.DB, r *domain.Route) error {
	return repo.CreateRoute(ctx, db, r)
}

// ListRecentRoutes proxies repo.ListRecentRoutes.
func (routeRepoShim) ListRecentRoutes(ctx context.Context, db *gorm.DB, limit int) ([]domain.Route, error) {
	return repo.ListRecentRoutes(ctx, db, limit)
}

// GetRoute proxies repo.GetRoute.
func (routeRepoShim) GetRoute(ctx context.Context, db *gorm.DB, id int32) (*domain.Route, error) {
	return repo.GetRoute(ctx, db, id)
}

// UpdateRoute proxies repo.UpdateRoute.
func (routeRepoShim) UpdateRoute(ctx context.Context, db *gorm.DB, id int32, r *domain.Route) error {
	return repo.UpdateRoute(ctx, db, id, r)
}

// DeleteRoute proxies repo.DeleteRoute.
func (routeRepoShim) DeleteRoute(ctx context.Context, db *gorm.DB, id int32) error {
	return repo.DeleteRoute(ctx, db, id)
}

// climberRepoShim adapts the repository free functions to services.ClimberRepo.
type climberRepoShim struct{}

func (climberRepoShim) CreateClimber(ctx context.Context, db *gorm.DB, c *domain.Climber) error {
	return repo.CreateClimber(ctx, db, c)
}

func (climberRepoShim) ListRecentClimbers(ctx context.Context, db *gorm.DB, limit int) ([]domain.Climber, error) {
	return repo.ListRecentClimbers(ctx, db, limit)
}

func (climberRepoShim) GetClimber(ctx context.Context, db *gorm.DB, id int32) (*domain.Climber, error) {
	return repo.GetClimber(ctx, db, id)
}

func (climberRepoShim) DeleteClimber(ctx context.Context, db *gorm.DB, id int32) error {
	return repo.DeleteClimber(ctx, db, id)
}

// climbRepoShim adapts the repository free functions to services.ClimbRepo.
type climbRepoShim struct{}

func (climbRepoShim) CreateClimb(ctx context.Context, db *gorm.DB, c *domain.Climb) error {
	return repo.CreateClimb(ctx, db, c)
}

func (climbRepoShim) GetClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) (*domain.Climb, error) {
	return repo.GetClimb(ctx, db, climberID, routeID)
}

func (climbRepoShim) UpdateClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32, rev domain.Review) error {
	return repo.UpdateClimb(ctx, db, climberID, routeID, rev)
}

func (climbRepoShim) DeleteClimb(ctx context.Context, db *gorm.DB, climberID, routeID int32) error {
	return repo.DeleteClimb(ctx, db, climberID, routeID)
}

// Services bundles the application services the router mounts. The fields are
// the handler-facing interfaces, so tests can swap in stubs.
type Services struct {
	Routes   handlers.RouteService
	Climbers handlers.ClimberService
	Climbs   handlers.ClimbService
}

// NewServices constructs the default service implementations over db,
// applying the configured list limit to both list-capable services.
func NewServices(db *gorm.DB, defaultListLimit int) Services {
	routeSvc := services.NewRouteService(db, routeRepoShim{})
	climberSvc := services.NewClimberService(db, climberRepoShim{})
	if defaultListLimit > 0 {
		routeSvc.ListLimit = defaultListLimit
		climberSvc.ListLimit = defaultListLimit
	}
	return Services{
		Routes:   routeSvc,
		Climbers: climberSvc,
		Climbs:   services.NewClimbService(db, climbRepoShim{}),
	}
}

// BuildRouter assembles a Gin engine with all middleware and HTTP endpoints.
// It configures observability (tracing, metrics), compression, rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and Security headers
func BuildRouter(cfg config.Config, svcs Services) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses for clients that accept it
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "resource not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))
	}

	h := handlers.New(svcs.Routes, svcs.Climbers, svcs.Climbs)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Routes
		api.POST("/routes", h.CreateRoute)
		api.GET("/routes", h.ListRoutes)
		api.GET("/routes/:id", h.GetRoute)
		api.PUT("/routes/:id", h.UpdateRoute)
		api.DELETE("/routes/:id", h.DeleteRoute)

		// Climbers
		api.POST("/climbers", h.CreateClimber)
		api.GET("/climbers", h.ListClimbers)
		// The single-climber routes share the :climber_id wildcard with the
		// review routes below; Gin requires consistent parameter names.
		api.GET("/climbers/:climber_id", h.GetClimber)
		api.DELETE("/climbers/:climber_id", h.DeleteClimber)

		// Reviews, addressed by (climber, route) pair
		api.GET("/climbers/:climber_id/:route_id", h.GetReview)
		api.POST("/climbers/:climber_id/:route_id", h.CreateReview)
		api.PUT("/climbers/:climber_id/:route_id", h.UpdateReview)
		api.DELETE("/climbers/:climber_id/:route_id", h.DeleteReview)
	}

	return r
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
