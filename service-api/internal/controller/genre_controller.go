package controller

import (
	"errors"
	"net/http"

	"movies-api/pkg/model"
	genreService "movies-api/service-api/internal/service/genre"

	"github.com/gin-gonic/gin"
)

// GenreController handles genre-related HTTP requests
type GenreController struct {
	genreService genreService.Service
}

// NewGenreController creates a new genre controller
func NewGenreController(genreService genreService.Service) *GenreController {
	return &GenreController{
		genreService: genreService,
	}
}

// RegisterRoutes mounts the genre routes on rg
func (gc *GenreController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", gc.GetGenres)
	rg.POST("", gc.CreateGenre)
	rg.GET("/:id", gc.GetGenre)
	rg.PUT("/:id", gc.UpdateGenre)
	rg.DELETE("/:id", gc.DeleteGenre)
	rg.GET("/:id/movies", gc.GetGenreMovies)
}

func (gc *GenreController) GetGenres(c *gin.Context) {
	genres, err := gc.genreService.GetGenres(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	if genres == nil {
		genres = []model.Genre{}
	}
	c.JSON(http.StatusOK, model.GenreListResponse{Genres: genres})
}

func (gc *GenreController) GetGenre(c *gin.Context) {
	genreID, ok := parseID(c, "id", "genre")
	if !ok {
		return
	}

	genre, err := gc.genreService.GetGenre(c.Request.Context(), genreID)
	if err != nil {
		gc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, genre)
}

func (gc *GenreController) CreateGenre(c *gin.Context) {
	var req model.GenreRequest
	if !bindRequest(c, &req) {
		return
	}

	genre, err := gc.genreService.CreateGenre(c.Request.Context(), &req)
	if err != nil {
		gc.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, genre)
}

func (gc *GenreController) UpdateGenre(c *gin.Context) {
	genreID, ok := parseID(c, "id", "genre")
	if !ok {
		return
	}

	var req model.GenreRequest
	if !bindRequest(c, &req) {
		return
	}

	genre, err := gc.genreService.UpdateGenre(c.Request.Context(), genreID, &req)
	if err != nil {
		gc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, genre)
}

func (gc *GenreController) DeleteGenre(c *gin.Context) {
	genreID, ok := parseID(c, "id", "genre")
	if !ok {
		return
	}

	err := gc.genreService.DeleteGenre(c.Request.Context(), genreID)
	if err != nil {
		gc.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetGenreMovies lists the movies tagged with a genre
func (gc *GenreController) GetGenreMovies(c *gin.Context) {
	genreID, ok := parseID(c, "id", "genre")
	if !ok {
		return
	}

	page, limit, err := pageParams(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := gc.genreService.GetGenreMovies(c.Request.Context(), genreID, page, limit)
	if err != nil {
		gc.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (gc *GenreController) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, genreService.ErrGenreNotFound):
		respondError(c, http.StatusNotFound, "genre not found")
	case errors.Is(err, genreService.ErrDuplicateGenre):
		respondError(c, http.StatusConflict, "genre already exists")
	case errors.Is(err, genreService.ErrBlankName):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, err)
	}
}
