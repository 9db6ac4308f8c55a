package seed

import (
	"context"
	"errors"
	"testing"

	"movies-api/pkg/model"
	"movies-api/service-api/internal/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRun_SkipsPopulatedDatabase(t *testing.T) {
	ctx := context.Background()
	genres := &mocks.GenreRepository{}
	movies := &mocks.MovieRepository{}
	genres.On("GetAll", ctx).Return([]model.Genre{{ID: uuid.New(), Name: "Drama"}}, nil)

	seeded, err := Run(ctx, genres, movies)

	require.NoError(t, err)
	assert.False(t, seeded)
	genres.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRun_InsertsCatalogue(t *testing.T) {
	ctx := context.Background()
	genres := &mocks.GenreRepository{}
	movies := &mocks.MovieRepository{}
	genres.On("GetAll", ctx).Return([]model.Genre{}, nil)

	created := map[uuid.UUID]string{}
	genres.On("Create", ctx, mock.AnythingOfType("*model.Genre")).Run(func(args mock.Arguments) {
		genre := args.Get(1).(*model.Genre)
		created[genre.ID] = genre.Name
	}).Return(nil)

	var seededMovies []*model.Movie
	movies.On("Create", ctx, mock.AnythingOfType("*model.Movie")).Run(func(args mock.Arguments) {
		seededMovies = append(seededMovies, args.Get(1).(*model.Movie))
	}).Return(nil)

	seeded, err := Run(ctx, genres, movies)

	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Len(t, created, 8)
	require.NotEmpty(t, seededMovies)
	for _, movie := range seededMovies {
		assert.NotEmpty(t, movie.Title)
		assert.NotEmpty(t, movie.GenreIDs)
		for _, id := range movie.GenreIDs {
			assert.Contains(t, created, id)
		}
	}
}

func TestRun_PropagatesErrors(t *testing.T) {
	ctx := context.Background()
	genres := &mocks.GenreRepository{}
	genres.On("GetAll", ctx).Return(nil, errors.New("relation does not exist"))

	_, err := Run(ctx, genres, &mocks.MovieRepository{})

	assert.Error(t, err)
}
