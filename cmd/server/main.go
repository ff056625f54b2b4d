package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tpapu/FlightTrackers/internal/infrastructure/config"
	"github.com/tpapu/FlightTrackers/internal/infrastructure/oauth"
	"github.com/tpapu/FlightTrackers/internal/infrastructure/persistence"
	"github.com/tpapu/FlightTrackers/internal/interface/flightapi"
	apiRepo "github.com/tpapu/FlightTrackers/internal/interface/repository"
	"github.com/tpapu/FlightTrackers/internal/interface/rest"
	"github.com/tpapu/FlightTrackers/internal/usecase"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting FlightTrackers Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up metrics
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer, "flighttrackers")

	// Set up reference-data repositories
	airportRepository := apiRepo.NewGormAirportRepository(gormDB)
	airlineRepository := apiRepo.NewGormAirlineRepository(gormDB)

	// Set up state and notifier repositories
	stateRepo := apiRepo.NewMongoStateRepository(db, log)
	notifierRepo := apiRepo.NewPushNotifierRepository(cfg.NotifierBaseURL, cfg.NotifierToken, log)

	// Set up flight API client with OAuth
	flightOAuth := oauth.NewFlightAPIOAuth(
		cfg.FlightAPIClientID,
		cfg.FlightAPIClientSecret,
		cfg.FlightAPITokenURL,
		log,
	)
	flightRepo := flightapi.NewClient(flightOAuth.Client(ctx), cfg.FlightAPIBaseURL, log)

	// Set up usecases behind one state lock
	stateLock := usecase.NewStateLock()
	evaluator := usecase.NewAlertEvaluator(notifierRepo, appMetrics, log)
	watchlistManager := usecase.NewWatchlistManager(stateRepo, flightRepo, evaluator, appMetrics, log, stateLock)
	searchService := usecase.NewSearchService(stateRepo, flightRepo, airportRepository, airlineRepository, appMetrics, log, stateLock)
	profileManager := usecase.NewProfileManager(stateRepo, log, stateLock)

	// Start watchlist refresher in a goroutine
	go func() {
		refreshTicker := time.NewTicker(cfg.RefreshInterval)
		defer refreshTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Watchlist refresher stopped")
				return
			case <-refreshTicker.C:
				log.Info("Refreshing watchlist prices")
				if _, err := watchlistManager.RefreshAll(ctx, cfg.DefaultOwnerID); err != nil {
					log.Error("Error refreshing watchlist", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server
	handler := rest.NewHandler(searchService, watchlistManager, profileManager, log, cfg.DefaultOwnerID)
	router := rest.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("FlightTrackers Service stopped")
}
