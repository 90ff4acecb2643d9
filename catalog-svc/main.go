package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "restaurant-catalog/catalog-svc/internal/api/http"
	"restaurant-catalog/catalog-svc/internal/service"
	"restaurant-catalog/catalog-svc/internal/storage"
	"restaurant-catalog/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// The store is opened and pinged before the listener exists, so no
	// request can arrive ahead of it.
	db := config.MustOpenStore(cfg, logger)
	defer db.Close()

	opts := service.Options{
		QR:     service.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		Logger: logger.Sugar(),
	}

	if cfg.RedisEnabled() {
		rdb := config.MustInitRedis(cfg, logger)
		defer rdb.Close()
		opts.Cache = storage.NewRedisCache(rdb, cfg.CacheTTL)
		logger.Info("Query cache enabled", zap.String("redis", cfg.RedisHost+":"+cfg.RedisPort), zap.Duration("ttl", cfg.CacheTTL))
	}

	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg, logger)
		defer writer.Close()
		opts.Events = storage.NewKafkaPublisher(writer)
		logger.Info("Query events enabled", zap.String("broker", cfg.KafkaBroker), zap.String("topic", cfg.KafkaTopic))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpapi.StartServer(ctx, cfg.Addr(), newHandler(db, cfg.DBDriver, opts), logger.Sugar()); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func newHandler(db *sql.DB, driver string, opts service.Options) http.Handler {
	repo := storage.NewSQLRepository(db, driver)
	handler := httpapi.NewHandler(
		service.NewRestaurantService(repo, opts),
		service.NewDishService(repo, opts),
		repo,
		opts.Logger,
	)
	return httpapi.NewRouter(handler)
}
