package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"movies-api/pkg/apidocs"
	"movies-api/pkg/config"
	"movies-api/pkg/database"
	"movies-api/pkg/logger"
	cache "movies-api/pkg/redis"
	"movies-api/pkg/storage"
	ctl "movies-api/service-api/internal/controller"
	genreRepo "movies-api/service-api/internal/repository/genre"
	movieRepo "movies-api/service-api/internal/repository/movie"
	"movies-api/service-api/internal/seed"
	genreService "movies-api/service-api/internal/service/genre"
	movieService "movies-api/service-api/internal/service/movie"
)

// shutdownTimeout bounds how long in-flight requests may take to drain
const shutdownTimeout = 10 * time.Second

type AppServer struct {
	config          *config.Config
	db              *sql.DB
	redisClient     *cache.Client
	movieController *ctl.MovieController
	genreController *ctl.GenreController
	docsController  *ctl.DocsController
	uploadsDir      string // set when posters live on the local filesystem
}

// NewAppServer connects to the backing services and wires repositories, services and controllers.
// Any failure here is fatal.
func NewAppServer(cfg *config.Config) *AppServer {
	ctx := context.Background()

	// initialize database
	db, err := database.NewPgDB(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}

	err = database.Migrate(ctx, db)
	if err != nil {
		logger.Fatalf("failed to migrate database: %v", err)
	}

	// initialize repositories
	movieRepository := movieRepo.NewRepository(db)
	genreRepository := genreRepo.NewRepository(db)

	if cfg.SeedDB {
		_, err = seed.Run(ctx, genreRepository, movieRepository)
		if err != nil {
			logger.Fatalf("failed to seed database: %v", err)
		}
	}

	// initialize cache, falling back to no caching when Redis is not configured
	var appCache cache.Cache = cache.NewNoopCache()
	var redisClient *cache.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewClient(cfg)
		if err != nil {
			logger.Fatalf("failed to initialize redis: %v", err)
		}
		appCache = redisClient
	} else {
		logger.Warn("REDIS_HOST not set, caching disabled")
	}

	// initialize storage provider
	storageProvider, err := storage.NewStorageProvider(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatalf("failed to initialize storage provider: %v", err)
	}

	var uploadsDir string
	if local, ok := storageProvider.(*storage.LocalProvider); ok {
		uploadsDir = local.BasePath()
	}

	// load the API document served under /api/docs
	doc, err := apidocs.Load(cfg.HTTP.SwaggerDocPath)
	if err != nil {
		logger.Fatalf("failed to load API document: %v", err)
	}
	logger.Infof("loaded API document %q from %s", doc.Title(), cfg.HTTP.SwaggerDocPath)

	// initialize services
	movieSvc := movieService.NewMovieService(movieRepository, genreRepository, storageProvider, appCache, cfg.Redis.TTL)
	genreSvc := genreService.NewGenreService(genreRepository, movieRepository, appCache, cfg.Redis.TTL)

	return &AppServer{
		config:          cfg,
		db:              db,
		redisClient:     redisClient,
		movieController: ctl.NewMovieController(movieSvc),
		genreController: ctl.NewGenreController(genreSvc),
		docsController:  ctl.NewDocsController(doc),
		uploadsDir:      uploadsDir,
	}
}

// Serve listens on the configured port and blocks until SIGINT, SIGTERM or SIGHUP.
func (a *AppServer) Serve() {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", a.config.Port))
	if err != nil {
		logger.Fatalf("server failed to start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	err = a.serve(ctx, ln)
	if err != nil {
		logger.Error(err, "server stopped with error")
	}
	a.close()

	logger.Info("server shutdown complete")
}

// serve handles requests on ln until ctx is done, then drains in-flight requests
func (a *AppServer) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           a.RegisterHandlers(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	_, port, _ := net.SplitHostPort(ln.Addr().String())
	logger.Infof("server started on port %s", port)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server graceful shutdown")
	return nil
}

// close releases the database and cache connections
func (a *AppServer) close() {
	if a.redisClient != nil {
		err := a.redisClient.Close()
		if err != nil {
			logger.Error(err, "failed to close redis client")
		}
	}
	if a.db != nil {
		err := a.db.Close()
		if err != nil {
			logger.Error(err, "failed to close database")
		}
	}
}
