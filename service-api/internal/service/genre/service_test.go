package genre

import (
	"context"
	"errors"
	"testing"
	"time"

	"movies-api/pkg/model"
	cache "movies-api/pkg/redis"
	"movies-api/service-api/internal/mocks"
	genreRepo "movies-api/service-api/internal/repository/genre"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *mocks.GenreRepository, *mocks.MovieRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	genres := &mocks.GenreRepository{}
	movies := &mocks.MovieRepository{}
	return NewGenreService(genres, movies, cache.NewClientFromRedis(rdb), time.Minute), genres, movies, mr
}

func TestCreateGenre(t *testing.T) {
	ctx := context.Background()

	t.Run("trims the name", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("Create", ctx, mock.MatchedBy(func(g *model.Genre) bool {
			return g.Name == "Drama" && g.ID != uuid.Nil
		})).Return(nil)

		genre, err := service.CreateGenre(ctx, &model.GenreRequest{Name: "  Drama "})

		require.NoError(t, err)
		assert.Equal(t, "Drama", genre.Name)
		genres.AssertExpectations(t)
	})

	t.Run("blank name", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)

		_, err := service.CreateGenre(ctx, &model.GenreRequest{Name: "   "})

		assert.ErrorIs(t, err, ErrBlankName)
		genres.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("Create", ctx, mock.Anything).Return(&pq.Error{Code: "23505"})

		_, err := service.CreateGenre(ctx, &model.GenreRequest{Name: "Drama"})

		assert.ErrorIs(t, err, ErrDuplicateGenre)
	})

	t.Run("unexpected failure is wrapped", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		dbErr := errors.New("broken pipe")
		genres.On("Create", ctx, mock.Anything).Return(dbErr)

		_, err := service.CreateGenre(ctx, &model.GenreRequest{Name: "Drama"})

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrDuplicateGenre)
	})
}

func TestGetGenres_CachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	service, genres, _, _ := newTestService(t)
	genres.On("GetAll", ctx).Return([]model.Genre{{ID: uuid.New(), Name: "Action"}}, nil)
	genres.On("Create", ctx, mock.Anything).Return(nil)

	for i := 0; i < 3; i++ {
		list, err := service.GetGenres(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	genres.AssertNumberOfCalls(t, "GetAll", 1)

	_, err := service.CreateGenre(ctx, &model.GenreRequest{Name: "Comedy"})
	require.NoError(t, err)

	_, err = service.GetGenres(ctx)
	require.NoError(t, err)
	genres.AssertNumberOfCalls(t, "GetAll", 2)
}

func TestGetGenre_NotFound(t *testing.T) {
	ctx := context.Background()
	service, genres, _, _ := newTestService(t)
	id := uuid.New()
	genres.On("GetByID", ctx, id).Return(nil, nil)

	_, err := service.GetGenre(ctx, id)

	assert.ErrorIs(t, err, ErrGenreNotFound)
}

func TestUpdateGenre(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("renames", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("GetByID", ctx, id).Return(&model.Genre{ID: id, Name: "Scifi"}, nil)
		genres.On("Update", ctx, mock.Anything).Return(nil)

		genre, err := service.UpdateGenre(ctx, id, &model.GenreRequest{Name: "Science Fiction"})

		require.NoError(t, err)
		assert.Equal(t, "Science Fiction", genre.Name)
	})

	t.Run("blank name", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)

		_, err := service.UpdateGenre(ctx, id, &model.GenreRequest{Name: "\n\t"})

		assert.ErrorIs(t, err, ErrBlankName)
		genres.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("GetByID", ctx, id).Return(&model.Genre{ID: id, Name: "Scifi"}, nil)
		genres.On("Update", ctx, mock.Anything).Return(&pq.Error{Code: "23505"})

		_, err := service.UpdateGenre(ctx, id, &model.GenreRequest{Name: "Drama"})

		assert.ErrorIs(t, err, ErrDuplicateGenre)
	})

	t.Run("missing", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("GetByID", ctx, id).Return(nil, nil)

		_, err := service.UpdateGenre(ctx, id, &model.GenreRequest{Name: "Drama"})

		assert.ErrorIs(t, err, ErrGenreNotFound)
	})
}

func TestDeleteGenre(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("drops cached movies", func(t *testing.T) {
		service, genres, _, mr := newTestService(t)
		genres.On("Delete", ctx, id).Return(nil)
		require.NoError(t, mr.Set("movies:detail:abc", "{}"))
		require.NoError(t, mr.Set("genres:all", "[]"))

		require.NoError(t, service.DeleteGenre(ctx, id))

		assert.False(t, mr.Exists("movies:detail:abc"))
		assert.False(t, mr.Exists("genres:all"))
	})

	t.Run("missing", func(t *testing.T) {
		service, genres, _, _ := newTestService(t)
		genres.On("Delete", ctx, id).Return(genreRepo.ErrNotFound)

		assert.ErrorIs(t, service.DeleteGenre(ctx, id), ErrGenreNotFound)
	})
}

func TestGetGenreMovies(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("filters movies by genre", func(t *testing.T) {
		service, genres, movies, _ := newTestService(t)
		genres.On("GetByID", ctx, id).Return(&model.Genre{ID: id, Name: "Drama"}, nil)
		movies.On("GetAll", ctx, model.MovieFilter{GenreID: &id}, 10, 10).
			Return([]model.Movie{{ID: uuid.New(), Title: "Heat"}}, 11, nil)

		response, err := service.GetGenreMovies(ctx, id, 2, 10)

		require.NoError(t, err)
		assert.Equal(t, 2, response.Page)
		assert.Equal(t, 2, response.TotalPages)
		assert.Len(t, response.Results, 1)
		movies.AssertExpectations(t)
	})

	t.Run("unknown genre", func(t *testing.T) {
		service, genres, movies, _ := newTestService(t)
		genres.On("GetByID", ctx, id).Return(nil, nil)

		_, err := service.GetGenreMovies(ctx, id, 1, 10)

		assert.ErrorIs(t, err, ErrGenreNotFound)
		movies.AssertNotCalled(t, "GetAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
