package app

import (
	"net/http"

	"movies-api/pkg/logger"
	"movies-api/pkg/model"
	"movies-api/service-api/internal/app/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHandlers builds the request pipeline. Order matters: the error
// handler wraps everything registered after it, and static files are tried
// before the API routers.
func (a *AppServer) RegisterHandlers() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler := gin.New()

	// middlewares
	logger.Debugf("allowing CORS origins: %v", a.config.CORS.AllowedOrigins)
	logger.Debugf("allowing CORS methods: %v", a.config.CORS.AllowedMethods)
	logger.Debugf("allowing CORS headers: %v", a.config.CORS.AllowedHeaders)

	handler.Use(cors.New(a.corsConfig()))
	handler.Use(middleware.RequestLogger())
	handler.Use(middleware.ErrorHandler())
	handler.Use(middleware.BodyParser(a.config.HTTP.BodyLimitBytes))
	handler.Use(middleware.Static(a.config.HTTP.PublicDir))

	// health check
	handler.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// api routes
	a.movieController.RegisterRoutes(handler.Group("/api/movies"))
	a.genreController.RegisterRoutes(handler.Group("/api/genres"))
	a.docsController.RegisterRoutes(handler.Group("/api/docs"))

	// poster files written by the local storage provider
	if a.uploadsDir != "" {
		handler.Static("/uploads", a.uploadsDir)
	}

	handler.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, model.NewErrorResponse(http.StatusNotFound, ""))
	})

	return handler
}

func (a *AppServer) corsConfig() cors.Config {
	corsConfig := cors.Config{
		AllowMethods:  a.config.CORS.AllowedMethods,
		AllowHeaders:  a.config.CORS.AllowedHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}

	// cors.New panics on an empty origin list
	if len(a.config.CORS.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}

	for _, origin := range a.config.CORS.AllowedOrigins {
		if origin == "*" {
			corsConfig.AllowAllOrigins = true
			return corsConfig
		}
	}

	corsConfig.AllowOrigins = a.config.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	return corsConfig
}
