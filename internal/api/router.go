package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/dbpool"
	"github.com/folioreads/folio-admin/internal/middleware"
	"github.com/folioreads/folio-admin/internal/security"
	"github.com/folioreads/folio-admin/internal/ws"
)

// ActorLookup resolves admin tokens for the auth middleware and the feed's
// periodic re-validation.
type ActorLookup = middleware.ActorLookup

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Hub         *ws.Hub
	Settings    SettingService
	Users       UserService
	Audit       AuditService
	ActorLookup ActorLookup
	CORSOrigins []string
	Version     string
}

// Router-level limits. Setting values are capped well below the body limit,
// so 1 MB covers any legitimate payload.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 50      // requests per second per IP
	rateBurst   = 100     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version)
	settings := NewSettingHandler(deps.Settings, log)
	users := NewUserHandler(deps.Users, log)
	audit := NewAuditHandler(deps.Audit, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	bfGuard := security.NewBruteForceGuard(ctx, log)
	api.Use(middleware.AuthMiddleware(deps.ActorLookup, log, bfGuard))

	// Settings.
	api.GET("/settings", settings.List)
	api.GET("/settings/:key", settings.Get)
	api.PUT("/settings/:key", settings.Update)
	api.POST("/settings/:key/rollback", settings.Rollback)
	api.GET("/settings/:key/history", settings.History)

	// Users.
	api.GET("/users/:uid", users.Get)
	api.PUT("/users/:uid/status", users.UpdateStatus)
	api.PUT("/users/:uid/role", users.AssignRole)
	api.DELETE("/users/:uid/role", users.RevokeRole)
	api.PUT("/users/:uid/author-status", users.UpdateAuthorStatus)

	// Audit (role check happens in the service; super_admin only).
	api.GET("/audit", audit.Query)
	api.GET("/audit/live", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.ActorLookup))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
