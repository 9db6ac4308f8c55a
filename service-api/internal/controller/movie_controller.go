package controller

import (
	"errors"
	"net/http"
	"strings"

	"movies-api/pkg/model"
	movieService "movies-api/service-api/internal/service/movie"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// posterFormField is the multipart field carrying the poster image
const posterFormField = "poster"

// multipart framing allowed on top of the poster itself
const multipartOverhead = 64 * 1024

// MovieController handles movie-related HTTP requests
type MovieController struct {
	movieService movieService.Service
}

// NewMovieController creates a new movie controller
func NewMovieController(movieService movieService.Service) *MovieController {
	return &MovieController{
		movieService: movieService,
	}
}

// RegisterRoutes mounts the movie routes on rg
func (mc *MovieController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", mc.GetMovies)
	rg.POST("", mc.CreateMovie)
	rg.GET("/:id", mc.GetMovie)
	rg.PUT("/:id", mc.UpdateMovie)
	rg.DELETE("/:id", mc.DeleteMovie)
	rg.POST("/:id/poster", mc.UploadPoster)
	rg.GET("/:id/poster", mc.GetPoster)
}

// GetMovies lists movies, optionally filtered by genre_id and title
func (mc *MovieController) GetMovies(c *gin.Context) {
	page, limit, err := pageParams(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	filter := model.MovieFilter{Title: strings.TrimSpace(c.Query("title"))}
	if raw := c.Query("genre_id"); raw != "" {
		genreID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid genre ID")
			return
		}
		filter.GenreID = &genreID
	}

	response, err := mc.movieService.GetMovies(c.Request.Context(), filter, page, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetMovie returns a single movie
func (mc *MovieController) GetMovie(c *gin.Context) {
	movieID, ok := parseID(c, "id", "movie")
	if !ok {
		return
	}

	movie, err := mc.movieService.GetMovie(c.Request.Context(), movieID)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// CreateMovie adds a movie from a JSON or url-encoded body
func (mc *MovieController) CreateMovie(c *gin.Context) {
	var req model.MovieRequest
	if !bindRequest(c, &req) {
		return
	}

	movie, err := mc.movieService.CreateMovie(c.Request.Context(), &req)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movie)
}

// UpdateMovie replaces a movie's fields
func (mc *MovieController) UpdateMovie(c *gin.Context) {
	movieID, ok := parseID(c, "id", "movie")
	if !ok {
		return
	}

	var req model.MovieRequest
	if !bindRequest(c, &req) {
		return
	}

	movie, err := mc.movieService.UpdateMovie(c.Request.Context(), movieID, &req)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// DeleteMovie removes a movie
func (mc *MovieController) DeleteMovie(c *gin.Context) {
	movieID, ok := parseID(c, "id", "movie")
	if !ok {
		return
	}

	err := mc.movieService.DeleteMovie(c.Request.Context(), movieID)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPoster stores the multipart "poster" file for a movie
func (mc *MovieController) UploadPoster(c *gin.Context) {
	movieID, ok := parseID(c, "id", "movie")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, movieService.MaxPosterSize+multipartOverhead)

	file, err := c.FormFile(posterFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, "poster file too large")
			return
		}
		respondError(c, http.StatusBadRequest, "poster file is required")
		return
	}

	movie, err := mc.movieService.UploadPoster(c.Request.Context(), movieID, file)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// GetPoster redirects to a temporary URL of the movie poster
func (mc *MovieController) GetPoster(c *gin.Context) {
	movieID, ok := parseID(c, "id", "movie")
	if !ok {
		return
	}

	url, err := mc.movieService.GetPosterURL(c.Request.Context(), movieID)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, url)
}

// handleError maps service errors to responses; anything unexpected goes to the error handler
func (mc *MovieController) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, movieService.ErrMovieNotFound):
		respondError(c, http.StatusNotFound, "movie not found")
	case errors.Is(err, movieService.ErrNoPoster):
		respondError(c, http.StatusNotFound, "movie has no poster")
	case errors.Is(err, movieService.ErrBlankTitle):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, movieService.ErrUnknownGenre):
		respondError(c, http.StatusBadRequest, "one or more genres do not exist")
	case errors.Is(err, movieService.ErrInvalidFile),
		errors.Is(err, movieService.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, movieService.ErrPosterTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		fail(c, err)
	}
}
