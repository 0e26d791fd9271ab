package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/charlesng35/collabhub/internal/app"
	iauth "github.com/charlesng35/collabhub/internal/auth"
	"github.com/charlesng35/collabhub/internal/cache"
	"github.com/charlesng35/collabhub/internal/handlers"
	"github.com/charlesng35/collabhub/internal/ideas"
	"github.com/charlesng35/collabhub/internal/middleware"
	"github.com/charlesng35/collabhub/internal/monitoring"
	"github.com/charlesng35/collabhub/internal/services"
)

// Option customises router construction.
type Option func(*routerOptions)

type routerOptions struct {
	ideas     *ideas.Generator
	teamOpts  []services.TeamServiceOption
	rateStore middleware.RateStore
}

// WithIdeaGenerator injects the idea generator, typically with a seeded source in tests.
func WithIdeaGenerator(generator *ideas.Generator) Option {
	return func(o *routerOptions) {
		o.ideas = generator
	}
}

// WithTeamOptions appends options applied to the team service after the configured ones.
func WithTeamOptions(opts ...services.TeamServiceOption) Option {
	return func(o *routerOptions) {
		o.teamOpts = append(o.teamOpts, opts...)
	}
}

// WithRateStore enables rate limiting backed by the given store.
func WithRateStore(store middleware.RateStore) Option {
	return func(o *routerOptions) {
		o.rateStore = store
	}
}

// NewRouter builds the Gin engine, wires middleware and registers all routes.
// store backs the trending cache and the cache health probe; it may be nil.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config, store cache.Store, opts ...Option) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	options := routerOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	auditSvc, err := services.NewAuditService(db)
	if err != nil {
		return nil, err
	}
	userSvc, err := services.NewUserService(db, auditSvc)
	if err != nil {
		return nil, err
	}
	projectSvc, err := services.NewProjectService(db, store, auditSvc, services.WithTrendingTTL(cfg.Projects.TrendingTTL))
	if err != nil {
		return nil, err
	}
	teamOpts := append([]services.TeamServiceOption{
		services.WithDefaultMaxMembers(cfg.Teams.DefaultMaxMembers),
		services.WithCapacityEnforcement(cfg.Teams.EnforceCapacity),
	}, options.teamOpts...)
	teamSvc, err := services.NewTeamService(db, auditSvc, teamOpts...)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.ReportErrors())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	if cfg.Server.RateLimit.Enabled && options.rateStore != nil {
		r.Use(middleware.RateLimit(options.rateStore, cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Window))
	}

	if cfg.Monitoring.Health.Enabled {
		health := monitoring.NewHealthManager(cfg.Monitoring.Health.Timeout)
		health.RegisterReadiness("database", monitoring.DatabaseProbe(db))
		if store != nil {
			health.RegisterReadiness("cache", monitoring.CacheProbe(store))
		}
		registerHealthRoutes(r, handlers.NewHealthHandler(health))
	}

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	requireAuth := middleware.Auth(jwt)
	api := r.Group("/api")

	registerAuthRoutes(api, handlers.NewAuthHandler(userSvc), requireAuth)
	registerProjectRoutes(api, handlers.NewProjectHandler(projectSvc), requireAuth)
	registerUserRoutes(api, handlers.NewUserHandler(userSvc), requireAuth)
	registerTeamRoutes(api, handlers.NewTeamHandler(teamSvc), requireAuth)
	registerIdeaRoutes(api, handlers.NewIdeaHandler(options.ideas))

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
