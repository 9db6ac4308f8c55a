//go:build integration

// Package dbtest starts a throwaway embedded PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"movies-api/pkg/config"
	"movies-api/pkg/database"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

// Start runs PostgreSQL in a temporary directory, applies the schema and
// returns an open pool plus a function that tears everything down.
func Start() (*sql.DB, func(), error) {
	port, err := freePort()
	if err != nil {
		return nil, nil, err
	}

	baseDir, err := os.MkdirTemp("", "movies-api-pg-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username("postgres").
		Password("postgres").
		Database("movies_test").
		Port(port).
		RuntimePath(filepath.Join(baseDir, "runtime")).
		DataPath(filepath.Join(baseDir, "data")).
		BinariesPath(filepath.Join(baseDir, "binaries")).
		StartTimeout(45 * time.Second).
		Logger(io.Discard))

	err = pg.Start()
	if err != nil {
		os.RemoveAll(baseDir)
		return nil, nil, fmt.Errorf("failed to start embedded postgres: %w", err)
	}

	stop := func() {
		pg.Stop()
		os.RemoveAll(baseDir)
	}

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Name:            "movies_test",
			Host:            "localhost",
			Port:            strconv.Itoa(int(port)),
			Username:        "postgres",
			Password:        "postgres",
			MaxOpenConns:    5,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Minute,
			SSLMode:         "disable",
		},
	}

	db, err := database.NewPgDB(cfg)
	if err != nil {
		stop()
		return nil, nil, err
	}

	err = database.Migrate(context.Background(), db)
	if err != nil {
		db.Close()
		stop()
		return nil, nil, err
	}

	return db, func() {
		db.Close()
		stop()
	}, nil
}

// Reset empties every table
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`TRUNCATE movie_genres, movies, genres`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func freePort() (uint32, error) {
	ln, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	defer ln.Close()
	return uint32(ln.Addr().(*net.TCPAddr).Port), nil
}
