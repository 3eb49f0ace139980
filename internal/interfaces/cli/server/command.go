package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	entitlementUC "melodia/internal/application/entitlement/usecases"
	genUC "melodia/internal/application/generation/usecases"
	payUC "melodia/internal/application/payment/usecases"
	practiceUC "melodia/internal/application/practice/usecases"
	songUC "melodia/internal/application/song/usecases"
	subUC "melodia/internal/application/subscription/usecases"
	userUC "melodia/internal/application/user/usecases"
	videoUC "melodia/internal/application/video/usecases"
	"melodia/internal/infrastructure/auth"
	"melodia/internal/infrastructure/cache"
	"melodia/internal/infrastructure/config"
	"melodia/internal/infrastructure/database"
	"melodia/internal/infrastructure/llm"
	"melodia/internal/infrastructure/migration"
	"melodia/internal/infrastructure/payment"
	"melodia/internal/infrastructure/ratelimit"
	"melodia/internal/infrastructure/renderer"
	"melodia/internal/infrastructure/repository"
	httpRouter "melodia/internal/interfaces/http"
	"melodia/internal/interfaces/http/handlers"
	"melodia/internal/interfaces/http/middleware"
	"melodia/internal/shared/goroutine"
	"melodia/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Melodia HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		manager := migration.NewManager(env)
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Infow("migrations completed")
	}

	redisClient, err := initRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	catalog, err := cfg.BuildPlanCatalog()
	if err != nil {
		return fmt.Errorf("failed to build plan catalog: %w", err)
	}

	db := database.Get()
	userRepo := repository.NewUserRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	songRepo := repository.NewSongRepository(db, log)
	practiceRepo := repository.NewPracticeSessionRepository(db, log)
	generationRepo := repository.NewGenerationRepository(db, log)
	paymentRepo := repository.NewPaymentRepository(db, log)

	planCache := cache.NewRedisUserPlanCache(redisClient, log)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	gateway := payment.NewRazorpayGateway(&cfg.Payment, log)
	llmClient := llm.NewHTTPClient(&cfg.LLM, log)
	videoRenderer := renderer.NewRemotionRenderer(&cfg.Renderer, log)

	guard := entitlementUC.NewGuard(userRepo, subscriptionRepo, songRepo,
		practiceRepo, generationRepo, catalog, log)

	h := httpRouter.Handlers{
		Auth: handlers.NewAuthHandler(
			userUC.NewRegisterUseCase(userRepo, hasher, jwtService, log),
			userUC.NewLoginUseCase(userRepo, hasher, jwtService, log),
			log,
		),
		Plan: handlers.NewPlanHandler(subUC.NewListPlansUseCase(catalog)),
		Subscription: handlers.NewSubscriptionHandler(
			subUC.NewCreateSubscriptionUseCase(subscriptionRepo, userRepo, catalog, planCache, log),
			subUC.NewCancelSubscriptionUseCase(subscriptionRepo, userRepo, planCache, log),
			subUC.NewGetSubscriptionStatusUseCase(subscriptionRepo, userRepo, catalog, planCache, log),
			subUC.NewListSubscriptionsUseCase(subscriptionRepo, userRepo, log),
			guard,
			log,
		),
		Payment: handlers.NewPaymentHandler(
			payUC.NewCreateOrderUseCase(paymentRepo, userRepo, catalog, gateway, cfg.Payment.RazorpayKeyID, log),
			payUC.NewVerifyPaymentUseCase(paymentRepo, subscriptionRepo, userRepo, catalog, gateway, planCache, log),
			payUC.NewGetPaymentUseCase(paymentRepo, userRepo, log),
			log,
		),
		Song: handlers.NewSongHandler(
			songUC.NewCreateSongUseCase(songRepo, userRepo, guard, log),
			songUC.NewListSongsUseCase(songRepo, log),
			songUC.NewGetSongUseCase(songRepo, log),
			songUC.NewCreateReviewUseCase(songRepo, userRepo, log),
			log,
		),
		Practice: handlers.NewPracticeHandler(
			practiceUC.NewRecordSessionUseCase(practiceRepo, userRepo, guard, log),
			practiceUC.NewListSessionsUseCase(practiceRepo, userRepo, log),
			practiceUC.NewGetStatsUseCase(practiceRepo, userRepo, log),
			log,
		),
		Generation: handlers.NewGenerationHandler(
			genUC.NewGenerateLyricsUseCase(generationRepo, userRepo, guard, llmClient, cfg.LLM.LyricsModel, log),
			genUC.NewGenerateMusicUseCase(generationRepo, userRepo, guard, llmClient, cfg.LLM.MusicModel, log),
			genUC.NewListGenerationsUseCase(generationRepo, userRepo, log),
			log,
		),
		Video: handlers.NewVideoHandler(
			videoUC.NewRenderVideoUseCase(videoRenderer, guard, log),
			log,
		),
	}

	authMW := middleware.NewAuthMiddleware(jwtService, log)
	limiter := ratelimit.NewRedisRateLimiter(redisClient)
	router := httpRouter.NewRouter(h, authMW, limiter, cfg, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "error", err)
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Infow("server stopped")
	return nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production", "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
