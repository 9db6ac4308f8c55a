package main

import (
	"context"

	"movies-api/pkg/logger"

	"github.com/alicebob/miniredis/v2"
)

// startEmbeddedRedis runs an in-process Redis until ctx is cancelled
func startEmbeddedRedis(ctx context.Context, ready chan<- string) {
	logger.Info("starting embedded Redis...")

	server, err := miniredis.Run()
	if err != nil {
		logger.Fatalf("failed to start embedded Redis: %v", err)
	}

	logger.Infof("embedded Redis started on %s", server.Addr())
	ready <- server.Addr()

	<-ctx.Done()

	logger.Info("shutting down embedded Redis...")
	server.Close()
}
