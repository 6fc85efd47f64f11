package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"media-review/cmd"
	"media-review/internal/data/repository"
	"media-review/internal/wire"
	"media-review/pkg/database"
	"media-review/pkg/mailer"
	"media-review/pkg/utils"

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database.DSN(), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)
	mail := mailer.New(config.Email, logger)

	// Wire all dependencies
	app, err := wire.Wiring(repos, mail, config, logger)
	if err != nil {
		logger.Fatal("Failed to wire application", zap.Error(err))
	}

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
