package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lotto/api"
	"lotto/application"
	"lotto/config"
	"lotto/database"
	"lotto/domain/interfaces"
	"lotto/infrastructure"
	"lotto/repository"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting lotto server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	// Initialize event publisher
	var publisher interfaces.EventPublisher
	if cfg.NATSServers != "" {
		log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
		natsPublisher, err := infrastructure.NewNATSEventPublisher(cfg.NATSServers)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		log.Info("NATS not configured, events will not be published")
		publisher = infrastructure.NewNoopEventPublisher()
	}

	// Initialize unit of work factory and application facade
	uowFactory := repository.NewUnitOfWorkFactory(db)
	app := application.NewApp(uowFactory, publisher, cfg.DefaultJackpotILS, cfg.Location())

	// Start the draw worker
	worker := application.NewDrawWorker(app, cfg.Location())
	stopWorker, err := worker.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start draw worker: %w", err)
	}
	defer stopWorker()

	// Start the HTTP server
	server := api.NewServer(cfg, app)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Router,
	}

	errChan := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Infof("Server is running in %s mode...", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	log.Info("Shutdown completed")
	return nil
}
