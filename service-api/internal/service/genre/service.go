package genre

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movies-api/pkg/database"
	"movies-api/pkg/logger"
	"movies-api/pkg/model"
	cache "movies-api/pkg/redis"
	genreRepo "movies-api/service-api/internal/repository/genre"
	movieRepo "movies-api/service-api/internal/repository/movie"

	"github.com/google/uuid"
)

var (
	ErrGenreNotFound  = errors.New("genre not found")
	ErrDuplicateGenre = errors.New("genre already exists")
	ErrBlankName      = errors.New("genre name must not be blank")
)

const (
	genreKeyPattern = "genres:*"
	movieKeyPattern = "movies:*"
	allGenresKey    = "genres:all"
	detailKey       = "genres:detail:%s"
	moviesKey       = "genres:movies:%s:%d:%d"
)

// Service defines the genre service interface
type Service interface {
	CreateGenre(ctx context.Context, req *model.GenreRequest) (*model.Genre, error)
	GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	GetGenres(ctx context.Context) ([]model.Genre, error)
	UpdateGenre(ctx context.Context, id uuid.UUID, req *model.GenreRequest) (*model.Genre, error)
	DeleteGenre(ctx context.Context, id uuid.UUID) error
	GetGenreMovies(ctx context.Context, id uuid.UUID, page, pageSize int) (*model.MovieListResponse, error)
}

type genreService struct {
	genreRepo genreRepo.Repository
	movieRepo movieRepo.Repository
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewGenreService creates a new genre service instance.
func NewGenreService(
	genreRepo genreRepo.Repository,
	movieRepo movieRepo.Repository,
	cache cache.Cache,
	cacheTTL time.Duration,
) Service {
	return &genreService{
		genreRepo: genreRepo,
		movieRepo: movieRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// CreateGenre stores a new genre with a unique name
func (s *genreService) CreateGenre(ctx context.Context, req *model.GenreRequest) (*model.Genre, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBlankName
	}

	genre := &model.Genre{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := s.genreRepo.Create(ctx, genre)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateGenre
		}
		return nil, fmt.Errorf("failed to save genre: %w", err)
	}

	s.invalidate(ctx, false)

	logger.Infof("genre created: %s (ID: %s)", genre.Name, genre.ID)
	return genre, nil
}

// GetGenre retrieves a genre by ID
func (s *genreService) GetGenre(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	key := fmt.Sprintf(detailKey, id)

	var cached model.Genre
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	genre, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, ErrGenreNotFound
	}

	s.writeCache(ctx, key, genre)
	return genre, nil
}

// GetGenres returns every genre ordered by name
func (s *genreService) GetGenres(ctx context.Context) ([]model.Genre, error) {
	var cached []model.Genre
	if s.readCache(ctx, allGenresKey, &cached) {
		return cached, nil
	}

	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	s.writeCache(ctx, allGenresKey, genres)
	return genres, nil
}

// UpdateGenre renames a genre
func (s *genreService) UpdateGenre(ctx context.Context, id uuid.UUID, req *model.GenreRequest) (*model.Genre, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrBlankName
	}

	genre, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, ErrGenreNotFound
	}

	genre.Name = name

	err = s.genreRepo.Update(ctx, genre)
	if err != nil {
		if errors.Is(err, genreRepo.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateGenre
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	s.invalidate(ctx, false)
	return genre, nil
}

// DeleteGenre removes a genre and its movie links
func (s *genreService) DeleteGenre(ctx context.Context, id uuid.UUID) error {
	err := s.genreRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, genreRepo.ErrNotFound) {
			return ErrGenreNotFound
		}
		return err
	}

	// cached movies still carry the removed genre id
	s.invalidate(ctx, true)

	logger.Infof("genre deleted: %s", id)
	return nil
}

// GetGenreMovies lists the movies tagged with a genre
func (s *genreService) GetGenreMovies(ctx context.Context, id uuid.UUID, page, pageSize int) (*model.MovieListResponse, error) {
	_, err := s.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}

	page, pageSize = model.NormalizePagination(page, pageSize)
	key := fmt.Sprintf(moviesKey, id, page, pageSize)

	var cached model.MovieListResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	offset := (page - 1) * pageSize
	movies, totalCount, err := s.movieRepo.GetAll(ctx, model.MovieFilter{GenreID: &id}, pageSize, offset)
	if err != nil {
		return nil, err
	}

	response := model.NewMovieListResponse(movies, totalCount, page, pageSize)
	s.writeCache(ctx, key, response)
	return response, nil
}

func (s *genreService) readCache(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warnf("cache read failed for %s: %v", key, err)
	}
	return false
}

func (s *genreService) writeCache(ctx context.Context, key string, value interface{}) {
	err := s.cache.Set(ctx, key, value, s.cacheTTL)
	if err != nil {
		logger.Warnf("cache write failed for %s: %v", key, err)
	}
}

func (s *genreService) invalidate(ctx context.Context, movies bool) {
	patterns := []string{genreKeyPattern}
	if movies {
		patterns = append(patterns, movieKeyPattern)
	}

	for _, pattern := range patterns {
		err := s.cache.DeletePattern(ctx, pattern)
		if err != nil {
			logger.Warnf("cache invalidation failed for %s: %v", pattern, err)
		}
	}
}
