package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mark6482/restaurant-service/config"
	httpapi "github.com/Mark6482/restaurant-service/internal/api/http"
	"github.com/Mark6482/restaurant-service/internal/domain"
	"github.com/Mark6482/restaurant-service/internal/service"
	"github.com/Mark6482/restaurant-service/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()
	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}
	cache := storage.NewRedisCache(rdb, cfg.RatingCacheTTL)

	writer := config.NewKafkaWriter(cfg)
	bus := storage.NewKafkaPublisher(writer)
	if err := bus.Connect(ctx, cfg.KafkaBrokers); err != nil {
		log.Warn().Err(err).Msg("Kafka producer not reachable")
	} else {
		log.Info().Strs("brokers", cfg.KafkaBrokers).Msg("Kafka producer connected")
	}
	events := service.NewEventPublisher(bus, cfg.KafkaPublishTimeout)

	aggregator := service.NewRatingAggregator(repo, cache, cfg.RatingResetOnEmpty)
	reviews := service.NewReviewService(repo, cache, aggregator)

	consumer := service.NewReviewConsumer(
		func() service.MessageReader { return config.NewKafkaReader(cfg, domain.ReviewTopics()) },
		reviews,
		service.ConsumerOptions{
			ManualCommit:    cfg.ManualCommit(),
			DeadLetter:      writer,
			DeadLetterTopic: cfg.KafkaDLQTopic,
			Connect: func(ctx context.Context) error {
				return storage.DialBrokers(ctx, cfg.KafkaBrokers)
			},
		},
	)
	if err := consumer.Start(ctx); err != nil {
		log.Warn().Err(err).Msg("Review consumer not running, health will report degraded")
	}

	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo, events, cache),
		service.NewCategoryService(repo, events),
		service.NewDishService(repo, events),
		service.NewHealthService(repo, bus, consumer, cache),
		service.NewQRService(repo, service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL}),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           httpapi.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Restaurant service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := consumer.Stop(); err != nil {
		log.Error().Err(err).Msg("Review consumer shutdown failed")
	}
	if err := bus.Close(); err != nil {
		log.Error().Err(err).Msg("Kafka producer shutdown failed")
	}
	log.Info().Msg("Restaurant service stopped")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
