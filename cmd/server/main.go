package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/silverbridge24/silverbridge-backend/internal/config"
	"github.com/silverbridge24/silverbridge-backend/internal/infrastructure/container"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg)
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			app.Log.WithError(err).Error("error closing application")
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			app.Log.WithError(err).Error("server error")
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.WithError(err).Error("server shutdown error")
		os.Exit(1)
	}

	app.Log.Info("server exited properly")
}
