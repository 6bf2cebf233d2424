package main

// @title Geodistance Microservice API
// @version 1.0.0
// @description Микросервис для приближённого расчёта расстояний по большому кругу. Использует быструю аппроксимацию haversine-формулы для региональных дистанций (до ~5° углового расстояния) и предоставляет API для расчёта расстояний, пакетной обработки, сравнения с точной формулой и поиска ближайших мест.
// @description
// @description Основные возможности:
// @description - Расчёт приближённого расстояния между парой координат
// @description - Пакетный расчёт для нескольких пар
// @description - Сравнение приближённой формулы с точной haversine
// @description - Хранение мест и поиск ближайших в заданном радиусе
// @description - Геокодирование адресов через Nominatim

// @contact.name API Support
// @contact.email support@geodistance-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/geodistance-microservice/docs/swagger"
	"github.com/geodistance-microservice/internal/config"
	httpDelivery "github.com/geodistance-microservice/internal/delivery/http"
	"github.com/geodistance-microservice/internal/delivery/http/handler"
	"github.com/geodistance-microservice/internal/infrastructure/nominatim"
	"github.com/geodistance-microservice/internal/pkg/logger"
	"github.com/geodistance-microservice/internal/repository/cache"
	"github.com/geodistance-microservice/internal/repository/postgres"
	"github.com/geodistance-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geodistance Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Float64("max_separation_deg", cfg.Distance.MaxSeparationDeg),
		zap.Bool("strict", cfg.Distance.Strict),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	placeRepo := postgres.NewPlaceRepository(db, log)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geocodeRepo := nominatim.NewNominatimClient(&cfg.Nominatim, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	distanceUC := usecase.NewDistanceUseCase(
		log,
		cfg.Distance.MaxSeparationDeg,
		cfg.Distance.Strict,
	)

	placeUC := usecase.NewPlaceUseCase(
		placeRepo,
		cacheRepo,
		geocodeRepo,
		log,
		cfg.Cache.NearestCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	distanceHandler := handler.NewDistanceHandler(distanceUC, log)
	placeHandler := handler.NewPlaceHandler(placeUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		distanceHandler,
		placeHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
