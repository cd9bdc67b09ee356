package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/video-hub/adapters/event"
	"github.com/khoahotran/video-hub/adapters/media_storage"
	"github.com/khoahotran/video-hub/adapters/persistence"
	"github.com/khoahotran/video-hub/internal/application/service"
	workerUC "github.com/khoahotran/video-hub/internal/application/usecase/video"
	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/pkg/logger"
	"github.com/khoahotran/video-hub/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger, err := logger.New(logger.Options{Env: cfg.App.Env, Service: "video-hub-worker", Level: cfg.App.LogLevel})
	if err != nil {
		log.Fatalf("FATAL: cannot init logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info("Starting Video Hub Worker...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.OptionsFrom(cfg, "video-hub-worker"), appLogger)
	if err != nil {
		appLogger.Fatal("Cannot init tracer provider", err)
	}
	defer shutdownTracing(context.Background())

	// Database
	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open store", err)
	}
	defer store.Close(context.Background())

	var listingCache service.ListingCache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		listingCache = persistence.NewRedisListingCache(redisClient, cfg.Redis.ListingTTL)
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Worker Use Case
	processVideoEventUC := workerUC.NewProcessVideoEventUseCase(store.Videos, uploader, listingCache, appLogger)

	// Kafka Consumer
	videoConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicVideoEvents,
		GroupID:  "video-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer videoConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicVideoEvents))

	for {
		msg, err := videoConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		payload, err := event.DecodeVideoEvent(msg)
		if err != nil {
			l.Error("Failed to decode event, skipping", err)
			commitMessage(videoConsumer, msg, l)
			continue
		}

		if err := processVideoEventUC.Execute(ctx, payload); err != nil {
			l.Error("Failed to process event", err, zap.String("video_id", payload.VideoID.String()))
			continue
		}

		commitMessage(videoConsumer, msg, l)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, l logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		l.Error("Failed to commit message", err)
	}
}
