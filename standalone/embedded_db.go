package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"movies-api/pkg/logger"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

// embeddedDB describes a running embedded PostgreSQL
type embeddedDB struct {
	port uint32
}

// findAvailablePort finds an available port starting from the given port
func findAvailablePort(startPort uint32) uint32 {
	for port := startPort; port < startPort+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port
		}
	}
	logger.Fatalf("could not find an available port starting from %d", startPort)
	return 0
}

// startEmbeddedDB runs PostgreSQL until ctx is cancelled. Data is kept under
// ~/.movies-api between runs; the schema is applied by the API on startup.
func startEmbeddedDB(ctx context.Context, ready chan<- embeddedDB) {
	logger.Info("starting embedded PostgreSQL...")

	port := findAvailablePort(15432)
	logger.Infof("using port %d for PostgreSQL", port)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Fatalf("failed to get user home directory: %v", err)
	}

	baseDir := filepath.Join(homeDir, ".movies-api")
	dataDir := filepath.Join(baseDir, "data")
	runtimeDir := filepath.Join(baseDir, "runtime")
	binariesDir := filepath.Join(baseDir, "binaries")

	for _, dir := range []string{runtimeDir, binariesDir} {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			logger.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	db := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username(embeddedDBUser).
		Password(embeddedDBPassword).
		Database(embeddedDBName).
		Port(port).
		RuntimePath(runtimeDir).
		DataPath(dataDir).
		BinariesPath(binariesDir).
		Logger(logWriter{}))

	// Start blocks until the server accepts connections
	err = db.Start()
	if err != nil {
		logger.Fatalf("failed to start embedded PostgreSQL: %v", err)
	}

	logger.Infof("embedded PostgreSQL started on port %d", port)
	ready <- embeddedDB{port: port}

	<-ctx.Done()

	logger.Info("shutting down embedded PostgreSQL...")
	err = db.Stop()
	if err != nil {
		logger.Error(err, "failed to stop embedded PostgreSQL")
	}
}

// logWriter forwards the postgres server output to the debug log
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logger.Debug(string(p))
	return len(p), nil
}
