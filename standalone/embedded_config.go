package main

import (
	"fmt"
	"net"
	"time"

	"movies-api/pkg/config"
	"movies-api/pkg/logger"
)

const (
	embeddedDBName     = "movies"
	embeddedDBUser     = "postgres"
	embeddedDBPassword = "postgres"
)

// createEmbeddedConfig creates a hardcoded configuration for the standalone application
func createEmbeddedConfig() *config.Config {
	return &config.Config{
		Port: "8080",
		Database: config.DatabaseConfig{
			Name:            embeddedDBName,
			Host:            "localhost",
			Port:            "15432",
			Username:        embeddedDBUser,
			Password:        embeddedDBPassword,
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			SSLMode:         "disable",
		},
		Redis: config.RedisConfig{
			TTL: time.Minute,
		},
		Storage: config.StorageConfig{
			Provider:  "local",
			LocalPath: "./uploads",
			BaseURL:   "http://localhost:8080/uploads",
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "console",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		},
		HTTP: config.HTTPConfig{
			PublicDir:      "public",
			SwaggerDocPath: "./api/swagger.yaml",
			BodyLimitBytes: 100 * 1024,
		},
		SeedDB: true,
	}
}

// updateConfigWithEmbeddedServices points the config at the running embedded services
func updateConfigWithEmbeddedServices(cfg *config.Config, db embeddedDB, redisAddr string) {
	cfg.Database.Host = "localhost"
	cfg.Database.Port = fmt.Sprintf("%d", db.port)

	host, port, err := net.SplitHostPort(redisAddr)
	if err != nil {
		logger.Warnf("invalid embedded redis address %q, caching disabled: %v", redisAddr, err)
		return
	}
	cfg.Redis.Host = host
	cfg.Redis.Port = port
}
