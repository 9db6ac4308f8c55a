package movie

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"movies-api/pkg/database"
	"movies-api/pkg/logger"
	"movies-api/pkg/model"
	cache "movies-api/pkg/redis"
	"movies-api/pkg/storage"
	genreRepo "movies-api/service-api/internal/repository/genre"
	movieRepo "movies-api/service-api/internal/repository/movie"

	"github.com/google/uuid"
)

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrUnknownGenre      = errors.New("unknown genre")
	ErrInvalidFile       = errors.New("invalid file")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrPosterTooLarge    = errors.New("poster file too large")
	ErrNoPoster          = errors.New("movie has no poster")
	ErrBlankTitle        = errors.New("movie title must not be blank")
)

// MaxPosterSize is the largest accepted poster upload
const MaxPosterSize = 5 * 1024 * 1024

// supported poster formats
var supportedFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// cache keys; movie writes drop every key matching invalidatePatterns
const (
	detailKey = "movies:detail:%s"
	listKey   = "movies:list:%d:%d:%s:%s"
)

// genre movie listings are cached by the genre service
var invalidatePatterns = []string{"movies:*", "genres:movies:*"}

// Service defines the movie service interface
type Service interface {
	CreateMovie(ctx context.Context, req *model.MovieRequest) (*model.Movie, error)
	GetMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	GetMovies(ctx context.Context, filter model.MovieFilter, page, pageSize int) (*model.MovieListResponse, error)
	UpdateMovie(ctx context.Context, id uuid.UUID, req *model.MovieRequest) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id uuid.UUID) error
	UploadPoster(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*model.Movie, error)
	GetPosterURL(ctx context.Context, id uuid.UUID) (string, error)
}

// movieService provides movie-related services.
type movieService struct {
	movieRepo       movieRepo.Repository
	genreRepo       genreRepo.Repository
	storageProvider storage.Provider
	cache           cache.Cache
	cacheTTL        time.Duration
}

// NewMovieService creates a new movie service instance.
func NewMovieService(
	movieRepo movieRepo.Repository,
	genreRepo genreRepo.Repository,
	storageProvider storage.Provider,
	cache cache.Cache,
	cacheTTL time.Duration,
) Service {
	return &movieService{
		movieRepo:       movieRepo,
		genreRepo:       genreRepo,
		storageProvider: storageProvider,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// CreateMovie validates the genres and stores a new movie
func (s *movieService) CreateMovie(ctx context.Context, req *model.MovieRequest) (*model.Movie, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrBlankTitle
	}

	genreIDs, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movie := &model.Movie{
		ID:        uuid.New(),
		GenreIDs:  genreIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRequest(movie, req)

	err = s.movieRepo.Create(ctx, movie)
	if err != nil {
		// a genre removed after resolveGenres ran
		if database.IsForeignKeyViolation(err) {
			return nil, ErrUnknownGenre
		}
		return nil, fmt.Errorf("failed to save movie: %w", err)
	}

	s.invalidate(ctx)

	logger.Infof("movie created: %s (ID: %s)", movie.Title, movie.ID)
	return movie, nil
}

// GetMovie retrieves a movie by ID
func (s *movieService) GetMovie(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	key := fmt.Sprintf(detailKey, id)

	var cached model.Movie
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	s.writeCache(ctx, key, movie)
	return movie, nil
}

// GetMovies retrieves movies with pagination
func (s *movieService) GetMovies(ctx context.Context, filter model.MovieFilter, page, pageSize int) (*model.MovieListResponse, error) {
	page, pageSize = model.NormalizePagination(page, pageSize)

	genreKey := ""
	if filter.GenreID != nil {
		genreKey = filter.GenreID.String()
	}
	key := fmt.Sprintf(listKey, page, pageSize, genreKey, strings.ToLower(filter.Title))

	var cached model.MovieListResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	offset := (page - 1) * pageSize
	movies, totalCount, err := s.movieRepo.GetAll(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}

	response := model.NewMovieListResponse(movies, totalCount, page, pageSize)
	s.writeCache(ctx, key, response)
	return response, nil
}

// UpdateMovie replaces a movie's metadata
func (s *movieService) UpdateMovie(ctx context.Context, id uuid.UUID, req *model.MovieRequest) (*model.Movie, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrBlankTitle
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	genreIDs, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	applyRequest(movie, req)
	movie.GenreIDs = genreIDs
	movie.UpdatedAt = time.Now().UTC()

	err = s.movieRepo.Update(ctx, movie)
	if err != nil {
		if errors.Is(err, movieRepo.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		if database.IsForeignKeyViolation(err) {
			return nil, ErrUnknownGenre
		}
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.invalidate(ctx)
	return movie, nil
}

// DeleteMovie deletes a movie and its poster
func (s *movieService) DeleteMovie(ctx context.Context, id uuid.UUID) error {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrMovieNotFound
	}

	// delete from database first
	err = s.movieRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, movieRepo.ErrNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	s.invalidate(ctx)

	if movie.PosterPath != "" {
		err = s.storageProvider.Delete(ctx, movie.PosterPath)
		if err != nil {
			// the database record is already gone
			logger.Error(err, "failed to delete movie poster from storage")
		}
	}

	logger.Infof("movie deleted: %s (ID: %s)", movie.Title, id)
	return nil
}

// UploadPoster stores a poster image and links it to the movie
func (s *movieService) UploadPoster(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*model.Movie, error) {
	err := validatePoster(file)
	if err != nil {
		return nil, err
	}

	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := fmt.Sprintf("posters/%s_%d%s", id, time.Now().UnixNano(), ext)

	storagePath, err := s.storageProvider.Upload(ctx, file, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload poster: %w", err)
	}

	updatedAt := time.Now().UTC()
	err = s.movieRepo.UpdatePoster(ctx, id, storagePath, updatedAt)
	if err != nil {
		// if database save fails, try to cleanup uploaded file
		deleteErr := s.storageProvider.Delete(ctx, storagePath)
		if deleteErr != nil {
			logger.Error(deleteErr, "failed to cleanup uploaded poster after database error")
		}
		if errors.Is(err, movieRepo.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to save poster path: %w", err)
	}

	previous := movie.PosterPath
	movie.PosterPath = storagePath
	movie.UpdatedAt = updatedAt
	s.invalidate(ctx)

	if previous != "" {
		err = s.storageProvider.Delete(ctx, previous)
		if err != nil {
			logger.Error(err, "failed to delete replaced poster")
		}
	}

	return movie, nil
}

// GetPosterURL returns a temporary URL for the movie poster
func (s *movieService) GetPosterURL(ctx context.Context, id uuid.UUID) (string, error) {
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return "", err
	}
	if movie.PosterPath == "" {
		return "", ErrNoPoster
	}

	url, err := s.storageProvider.GetSignedURL(ctx, movie.PosterPath)
	if err != nil {
		return "", fmt.Errorf("failed to generate poster URL: %w", err)
	}

	return url, nil
}

// resolveGenres parses genre ids, drops duplicates and checks they exist
func (s *movieService) resolveGenres(ctx context.Context, raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownGenre, value)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return ids, nil
	}

	count, err := s.genreRepo.CountExisting(ctx, ids)
	if err != nil {
		return nil, err
	}
	if count != len(ids) {
		return nil, ErrUnknownGenre
	}

	return ids, nil
}

func (s *movieService) readCache(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warnf("cache read failed for %s: %v", key, err)
	}
	return false
}

func (s *movieService) writeCache(ctx context.Context, key string, value interface{}) {
	err := s.cache.Set(ctx, key, value, s.cacheTTL)
	if err != nil {
		logger.Warnf("cache write failed for %s: %v", key, err)
	}
}

func (s *movieService) invalidate(ctx context.Context) {
	for _, pattern := range invalidatePatterns {
		err := s.cache.DeletePattern(ctx, pattern)
		if err != nil {
			logger.Warnf("cache invalidation failed for %s: %v", pattern, err)
		}
	}
}

func applyRequest(movie *model.Movie, req *model.MovieRequest) {
	movie.Title = strings.TrimSpace(req.Title)
	movie.OriginalTitle = req.OriginalTitle
	movie.Overview = req.Overview
	movie.ReleaseDate = req.ReleaseDate
	movie.OriginalLanguage = req.OriginalLanguage
	movie.Adult = req.Adult
	movie.Popularity = req.Popularity
	movie.VoteAverage = req.VoteAverage
	movie.VoteCount = req.VoteCount
}

// validatePoster checks the upload is a supported image within the size limit
func validatePoster(file *multipart.FileHeader) error {
	if file == nil {
		return ErrInvalidFile
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !supportedFormats[ext] {
		return ErrUnsupportedFormat
	}

	if file.Size > MaxPosterSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrPosterTooLarge, file.Size, MaxPosterSize)
	}

	return nil
}
