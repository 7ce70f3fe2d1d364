package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"bus-booking/cmd"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/usecase"
	"bus-booking/internal/wire"
	"bus-booking/pkg/cache"
	"bus-booking/pkg/database"
	"bus-booking/pkg/messaging"
	"bus-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	if config.Database.SeedCatalog {
		if err := database.SeedCatalog(ctx, db); err != nil {
			logger.Fatal("Failed to seed route catalog", zap.Error(err))
		}
		logger.Info("Route catalog seeded")
	}

	repos := repository.NewRepository(db, logger)

	// Optional trip cache
	var tripCache usecase.TripCache
	if config.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(config.Redis)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, trip lookups will hit the database", zap.Error(err))
		}
		tripCache = redisCache
	}

	// Optional event publishing
	var publisher usecase.Publisher
	if len(config.Kafka.Brokers) > 0 {
		producer := messaging.NewProducer(config.Kafka.Brokers, logger)
		defer producer.Close()
		publisher = producer
	}

	// Wire all dependencies
	app := wire.Wiring(repos, tripCache, publisher, config, logger)

	if interval := config.Booking.ReaperInterval(); interval > 0 {
		go cmd.HoldReaper(ctx, app.Service.Inventory, interval, logger)
	}

	if len(config.Kafka.Brokers) > 0 {
		consumer := messaging.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID, config.Kafka.BookingTopic, logger)
		defer consumer.Close()
		go cmd.TicketNotifier(ctx, consumer, app.Service.Notifier, logger)
	}

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
