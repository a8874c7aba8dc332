// main.go
package main

import (
	"log"

	"travelo-booking/cmd"
	"travelo-booking/internal/data/repository"
	"travelo-booking/internal/notifier"
	"travelo-booking/internal/provider"
	"travelo-booking/internal/wire"
	"travelo-booking/internal/worker"
	"travelo-booking/pkg/database"
	"travelo-booking/pkg/utils"

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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment providers
	providers := provider.NewRegistry(
		provider.NewMoMo(config.MoMo, config.App.BaseURL),
		provider.NewVNPay(config.VNPay, config.App.BaseURL),
		provider.NewPayPal(config.PayPal),
	)

	// Booking confirmation emails
	notify := notifier.NewEmailNotifier(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, providers, notify, config, logger)

	// Background sweep of expired holds
	reaper, err := worker.NewReaper(repos, logger)
	if err != nil {
		logger.Fatal("Failed to create hold reaper", zap.Error(err))
	}
	if err := reaper.Start(); err != nil {
		logger.Fatal("Failed to start hold reaper", zap.Error(err))
	}
	defer reaper.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
