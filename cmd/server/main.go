package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/adapters/event"
	httpAdapter "github.com/khoahotran/video-hub/adapters/http"
	"github.com/khoahotran/video-hub/adapters/media_storage"
	"github.com/khoahotran/video-hub/adapters/persistence"
	"github.com/khoahotran/video-hub/internal/application/service"
	authUC "github.com/khoahotran/video-hub/internal/application/usecase/auth"
	videoUC "github.com/khoahotran/video-hub/internal/application/usecase/video"
	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/pkg/auth"
	"github.com/khoahotran/video-hub/pkg/logger"
	"github.com/khoahotran/video-hub/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger, err := logger.New(logger.Options{Env: cfg.App.Env, Service: "video-hub-api", Level: cfg.App.LogLevel})
	if err != nil {
		log.Fatalf("FATAL: cannot init logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Start Video Hub API Server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.OptionsFrom(cfg, "video-hub-api"), appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init tracer provider", err)
	}

	// Initialize dependencies
	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err, zap.String("driver", cfg.DB.Driver))
	}

	var listingCache service.ListingCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		listingCache = persistence.NewRedisListingCache(redisClient, cfg.Redis.ListingTTL)
	} else {
		appLogger.Warn("REDIS_ADDR not set, listing cache disabled")
	}

	var publisher service.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, video events are not published")
	}

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Use Cases
	loginUseCase := authUC.NewLoginUseCase(store.Users, jwtSvc, appLogger)
	listVideosUseCase := videoUC.NewListVideosUseCase(store.Videos, listingCache, appLogger)
	publishVideoUseCase := videoUC.NewPublishVideoUseCase(store.Videos, uploader, publisher, listingCache, appLogger)
	updateVideoUseCase := videoUC.NewUpdateVideoUseCase(store.Videos, uploader, publisher, listingCache, appLogger)
	deleteVideoUseCase := videoUC.NewDeleteVideoUseCase(store.Videos, uploader, publisher, listingCache, appLogger)
	getVideoUseCase := videoUC.NewGetVideoUseCase(store.Videos, publisher, listingCache, appLogger)
	reactVideoUseCase := videoUC.NewReactVideoUseCase(store.Videos, publisher, listingCache, appLogger)
	feedUseCase := videoUC.NewFeedUseCase(listVideosUseCase, cfg.App.PublicURL, appLogger)

	// HTTP Handlers
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.Handlers{
		Auth: httpAdapter.NewAuthHandler(loginUseCase, appLogger),
		Video: httpAdapter.NewVideoHandler(
			publishVideoUseCase,
			updateVideoUseCase,
			deleteVideoUseCase,
			getVideoUseCase,
			listVideosUseCase,
			reactVideoUseCase,
		),
		Feed: httpAdapter.NewFeedHandler(feedUseCase, appLogger),
	}, jwtSvc, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
	store.Close(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Failed to shutdown tracer provider", err)
	}
	appLogger.Info("Server exited")
}
