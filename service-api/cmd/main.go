package main

import (
	"context"
	"log"

	"movies-api/pkg/config"
	"movies-api/pkg/logger"
	"movies-api/service-api/internal/app"
)

func main() {
	// Initialize configuration
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("FATAL: failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.InitLogger(cfg)

	// Create and start the application server
	server := app.NewAppServer(cfg)
	server.Serve()
}
