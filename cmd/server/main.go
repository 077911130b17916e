package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/TronTram/TimeTracker-sub003/internal/config"
	"github.com/TronTram/TimeTracker-sub003/internal/db"
	"github.com/TronTram/TimeTracker-sub003/internal/handler"
	"github.com/TronTram/TimeTracker-sub003/internal/logging"
	"github.com/TronTram/TimeTracker-sub003/internal/repository"
	"github.com/TronTram/TimeTracker-sub003/internal/router"
	"github.com/TronTram/TimeTracker-sub003/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(database)
	prefsRepo := repository.NewPreferencesRepository(database)

	authService := service.NewAuthService(userRepo, prefsRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	prefsService := service.NewPreferencesService(prefsRepo, logger)
	monitoringService := service.NewMonitoringService(logger)

	authHandler := handler.NewAuthHandler(authService)
	prefsHandler := handler.NewPreferencesHandler(prefsService)
	monitoringHandler := handler.NewMonitoringHandler(monitoringService)

	engine := router.New(authService, authHandler, prefsHandler, monitoringHandler, cfg.CORSOrigins)
	logger.Info("server listening", zap.String("port", cfg.Port))
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Fatal("run server", zap.Error(err))
	}
}
