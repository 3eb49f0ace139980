// Package http assembles the gin engine: middleware chain plus route
// registration for every API surface.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"melodia/internal/infrastructure/config"
	"melodia/internal/infrastructure/ratelimit"
	"melodia/internal/interfaces/http/handlers"
	"melodia/internal/interfaces/http/middleware"
	"melodia/internal/shared/logger"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Plan         *handlers.PlanHandler
	Subscription *handlers.SubscriptionHandler
	Payment      *handlers.PaymentHandler
	Song         *handlers.SongHandler
	Practice     *handlers.PracticeHandler
	Generation   *handlers.GenerationHandler
	Video        *handlers.VideoHandler
}

type Router struct {
	engine   *gin.Engine
	handlers Handlers
	authMW   *middleware.AuthMiddleware
	limiter  ratelimit.RateLimiter
	cfg      *config.Config
	logger   logger.Interface
}

func NewRouter(h Handlers, authMW *middleware.AuthMiddleware, limiter ratelimit.RateLimiter, cfg *config.Config, log logger.Interface) *Router {
	return &Router{
		engine:   gin.New(),
		handlers: h,
		authMW:   authMW,
		limiter:  limiter,
		cfg:      cfg,
		logger:   log,
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", r.handlers.Auth.Register)
		auth.POST("/login", r.handlers.Auth.Login)
	}

	api.GET("/plans", r.handlers.Plan.List)

	// Marketplace browsing is public; publishing and reviewing are not.
	// OptionalAuth attributes browsing to the user when a token is sent.
	songs := api.Group("/songs")
	{
		songs.GET("", r.authMW.OptionalAuth(), r.handlers.Song.List)
		songs.GET("/:id", r.authMW.OptionalAuth(), r.handlers.Song.Get)
		songs.POST("", r.authMW.RequireAuth(), r.handlers.Song.Create)
		songs.POST("/:id/reviews", r.authMW.RequireAuth(), r.handlers.Song.CreateReview)
	}

	authed := api.Group("")
	authed.Use(r.authMW.RequireAuth())
	{
		sub := authed.Group("/subscription")
		{
			sub.GET("", r.handlers.Subscription.Status)
			sub.POST("", r.handlers.Subscription.Create)
			sub.DELETE("/:id", r.handlers.Subscription.Cancel)
			sub.GET("/history", r.handlers.Subscription.History)
			sub.GET("/entitlements", r.handlers.Subscription.Entitlements)
		}

		payments := authed.Group("/payments")
		{
			payments.POST("/orders", r.handlers.Payment.CreateOrder)
			payments.POST("/verify", r.handlers.Payment.Verify)
			payments.GET("/:id", r.handlers.Payment.Get)
		}

		practiceRoutes := authed.Group("/practice")
		{
			practiceRoutes.POST("", r.handlers.Practice.Record)
			practiceRoutes.GET("", r.handlers.Practice.List)
			practiceRoutes.GET("/stats", r.handlers.Practice.Stats)
		}

		// AI and render calls are expensive upstream; throttle bursts per
		// user on top of the plan quota.
		generateLimit := middleware.RateLimit(r.limiter, "generate",
			ratelimit.Config{RequestsPerMinute: 10, RequestsPerHour: 120}, r.logger)
		renderLimit := middleware.RateLimit(r.limiter, "render",
			ratelimit.Config{RequestsPerMinute: 2, RequestsPerHour: 20}, r.logger)

		authed.POST("/lyrics/generate", generateLimit, r.handlers.Generation.GenerateLyrics)
		authed.POST("/music/generate", generateLimit, r.handlers.Generation.GenerateMusic)
		authed.GET("/generations", r.handlers.Generation.List)

		authed.POST("/videos/render", renderLimit, r.handlers.Video.Render)
	}
}
