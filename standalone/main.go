package main

import (
	"context"
	"sync"

	"movies-api/pkg/logger"
)

func main() {
	// Create centralized configuration
	cfg := createEmbeddedConfig()

	logger.InitLogger(cfg)

	logger.Info("starting movies-api standalone (embedded PostgreSQL, embedded Redis, API)")

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	dbReady := make(chan embeddedDB, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		startEmbeddedDB(ctx, dbReady)
	}()

	redisReady := make(chan string, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		startEmbeddedRedis(ctx, redisReady)
	}()

	logger.Info("waiting for embedded services to be ready...")
	db := <-dbReady
	redisAddr := <-redisReady
	logger.Info("all embedded services are ready")

	// Update config with actual embedded service addresses
	updateConfigWithEmbeddedServices(cfg, db, redisAddr)

	// blocks until SIGINT/SIGTERM and the API has drained
	startAPIService(cfg)

	logger.Info("stopping embedded services...")
	cancel()
	wg.Wait()
	logger.Info("shutdown complete")
}
