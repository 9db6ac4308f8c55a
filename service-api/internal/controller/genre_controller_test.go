package controller

import (
	"errors"
	"net/http"
	"testing"

	"movies-api/pkg/model"
	"movies-api/service-api/internal/mocks"
	genreService "movies-api/service-api/internal/service/genre"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newGenreRouter() (*mocks.GenreService, *gin.Engine) {
	service := &mocks.GenreService{}
	return service, newTestRouter("/api/genres", NewGenreController(service))
}

func TestGenreController_GetGenres(t *testing.T) {
	t.Run("wraps the list", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("GetGenres", mock.Anything).Return([]model.Genre{{ID: uuid.New(), Name: "Action"}}, nil)

		w := doRequest(router, http.MethodGet, "/api/genres", nil, "")

		require.Equal(t, http.StatusOK, w.Code)
		var response model.GenreListResponse
		decode(t, w, &response)
		require.Len(t, response.Genres, 1)
		assert.Equal(t, "Action", response.Genres[0].Name)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("GetGenres", mock.Anything).Return(nil, nil)

		w := doRequest(router, http.MethodGet, "/api/genres", nil, "")

		assert.JSONEq(t, `{"genres":[]}`, w.Body.String())
	})

	t.Run("failure", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("GetGenres", mock.Anything).Return(nil, errors.New("timeout"))

		w := doRequest(router, http.MethodGet, "/api/genres", nil, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, internalErrorBody, w.Body.String())
	})
}

func TestGenreController_CreateGenre(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]string
		result     *model.Genre
		err        error
		wantStatus int
	}{
		{name: "created", payload: map[string]string{"name": "Horror"}, result: &model.Genre{ID: uuid.New(), Name: "Horror"}, wantStatus: http.StatusCreated},
		{name: "duplicate", payload: map[string]string{"name": "Horror"}, err: genreService.ErrDuplicateGenre, wantStatus: http.StatusConflict},
		{name: "missing name", payload: map[string]string{}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, router := newGenreRouter()
			service.On("CreateGenre", mock.Anything, mock.Anything).Return(tt.result, tt.err)

			w := doJSON(t, router, http.MethodPost, "/api/genres", tt.payload)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestGenreController_BlankName(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			service, router := newGenreRouter()
			path := "/api/genres"
			if method == http.MethodPut {
				path += "/" + uuid.NewString()
			}

			w := doJSON(t, router, method, path, map[string]string{"name": "   "})

			require.Equal(t, http.StatusBadRequest, w.Code)
			var response model.ErrorResponse
			decode(t, w, &response)
			assert.Equal(t, "must not be blank", response.Errors["name"])
			service.AssertNotCalled(t, "CreateGenre", mock.Anything, mock.Anything)
			service.AssertNotCalled(t, "UpdateGenre", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenreController_ByID(t *testing.T) {
	id := uuid.New()
	path := "/api/genres/" + id.String()

	t.Run("get", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("GetGenre", mock.Anything, id).Return(&model.Genre{ID: id, Name: "Drama"}, nil)

		w := doRequest(router, http.MethodGet, path, nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("GetGenre", mock.Anything, id).Return(nil, genreService.ErrGenreNotFound)

		w := doRequest(router, http.MethodGet, path, nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"status":404,"message":"genre not found"}`, w.Body.String())
	})

	t.Run("rename", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("UpdateGenre", mock.Anything, id, &model.GenreRequest{Name: "Thriller"}).
			Return(&model.Genre{ID: id, Name: "Thriller"}, nil)

		w := doJSON(t, router, http.MethodPut, path, map[string]string{"name": "Thriller"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("DeleteGenre", mock.Anything, id).Return(nil)

		w := doRequest(router, http.MethodDelete, path, nil, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		service, router := newGenreRouter()
		service.On("DeleteGenre", mock.Anything, id).Return(genreService.ErrGenreNotFound)

		w := doRequest(router, http.MethodDelete, path, nil, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, router := newGenreRouter()

		w := doRequest(router, http.MethodDelete, "/api/genres/drama", nil, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGenreController_GetGenreMovies(t *testing.T) {
	id := uuid.New()
	service, router := newGenreRouter()
	service.On("GetGenreMovies", mock.Anything, id, 3, 10).
		Return(model.NewMovieListResponse(nil, 0, 3, 10), nil)

	w := doRequest(router, http.MethodGet, "/api/genres/"+id.String()+"/movies?page=3&limit=10", nil, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":3,"total_pages":0,"total_results":0,"results":[]}`, w.Body.String())
}
