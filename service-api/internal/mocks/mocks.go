// Package mocks holds testify mocks of the repository, storage and service
// interfaces shared by the service and controller tests.
package mocks

import (
	"context"
	"mime/multipart"
	"time"

	"movies-api/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MovieRepository mocks movie.Repository
type MovieRepository struct {
	mock.Mock
}

func (m *MovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MovieRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if movie, ok := args.Get(0).(*model.Movie); ok {
		return movie, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MovieRepository) GetAll(ctx context.Context, filter model.MovieFilter, limit, offset int) ([]model.Movie, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	movies, _ := args.Get(0).([]model.Movie)
	return movies, args.Int(1), args.Error(2)
}

func (m *MovieRepository) Update(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MovieRepository) UpdatePoster(ctx context.Context, id uuid.UUID, posterPath string, updatedAt time.Time) error {
	args := m.Called(ctx, id, posterPath, updatedAt)
	return args.Error(0)
}

func (m *MovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GenreRepository mocks genre.Repository
type GenreRepository struct {
	mock.Mock
}

func (m *GenreRepository) Create(ctx context.Context, genre *model.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *GenreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	args := m.Called(ctx, id)
	if genre, ok := args.Get(0).(*model.Genre); ok {
		return genre, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GenreRepository) GetAll(ctx context.Context) ([]model.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]model.Genre)
	return genres, args.Error(1)
}

func (m *GenreRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *GenreRepository) Update(ctx context.Context, genre *model.Genre) error {
	args := m.Called(ctx, genre)
	return args.Error(0)
}

func (m *GenreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// StorageProvider mocks storage.Provider
type StorageProvider struct {
	mock.Mock
}

func (m *StorageProvider) Upload(ctx context.Context, file *multipart.FileHeader, filename string) (string, error) {
	args := m.Called(ctx, file, filename)
	return args.String(0), args.Error(1)
}

func (m *StorageProvider) GetSignedURL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *StorageProvider) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MovieService mocks movie.Service
type MovieService struct {
	mock.Mock
}

func (m *MovieService) CreateMovie(ctx context.Context, req *model.MovieRequest) (*model.Movie, error) {
	args := m.Called(ctx, req)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MovieService) GetMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MovieService) GetMovies(ctx context.Context, filter model.MovieFilter, page, pageSize int) (*model.MovieListResponse, error) {
	args := m.Called(ctx, filter, page, pageSize)
	response, _ := args.Get(0).(*model.MovieListResponse)
	return response, args.Error(1)
}

func (m *MovieService) UpdateMovie(ctx context.Context, id uuid.UUID, req *model.MovieRequest) (*model.Movie, error) {
	args := m.Called(ctx, id, req)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MovieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MovieService) UploadPoster(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*model.Movie, error) {
	args := m.Called(ctx, id, file)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MovieService) GetPosterURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// GenreService mocks genre.Service
type GenreService struct {
	mock.Mock
}

func (m *GenreService) CreateGenre(ctx context.Context, req *model.GenreRequest) (*model.Genre, error) {
	args := m.Called(ctx, req)
	genre, _ := args.Get(0).(*model.Genre)
	return genre, args.Error(1)
}

func (m *GenreService) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	args := m.Called(ctx, id)
	genre, _ := args.Get(0).(*model.Genre)
	return genre, args.Error(1)
}

func (m *GenreService) GetGenres(ctx context.Context) ([]model.Genre, error) {
	args := m.Called(ctx)
	genres, _ := args.Get(0).([]model.Genre)
	return genres, args.Error(1)
}

func (m *GenreService) UpdateGenre(ctx context.Context, id uuid.UUID, req *model.GenreRequest) (*model.Genre, error) {
	args := m.Called(ctx, id, req)
	genre, _ := args.Get(0).(*model.Genre)
	return genre, args.Error(1)
}

func (m *GenreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *GenreService) GetGenreMovies(ctx context.Context, id uuid.UUID, page, pageSize int) (*model.MovieListResponse, error) {
	args := m.Called(ctx, id, page, pageSize)
	response, _ := args.Get(0).(*model.MovieListResponse)
	return response, args.Error(1)
}
