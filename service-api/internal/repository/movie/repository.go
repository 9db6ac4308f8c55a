package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"movies-api/pkg/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("movie not found")

// Repository defines the movie repository interface
type Repository interface {
	Create(ctx context.Context, movie *model.Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	GetAll(ctx context.Context, filter model.MovieFilter, limit, offset int) ([]model.Movie, int, error)
	Update(ctx context.Context, movie *model.Movie) error
	UpdatePoster(ctx context.Context, id uuid.UUID, posterPath string, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements the movie repository
type repository struct {
	db *sql.DB
}

// NewRepository creates a new movie repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

const selectMovie = `
	SELECT m.id, m.title, m.original_title, m.overview, m.release_date, m.original_language,
		m.adult, m.popularity, m.vote_average, m.vote_count, m.poster_path, m.created_at, m.updated_at,
		COALESCE(
			(SELECT array_agg(mg.genre_id::text ORDER BY mg.genre_id) FROM movie_genres mg WHERE mg.movie_id = m.id),
			'{}'
		)
	FROM movies m`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*model.Movie, error) {
	movie := &model.Movie{}
	var genreIDs pq.StringArray

	err := row.Scan(&movie.ID, &movie.Title, &movie.OriginalTitle, &movie.Overview,
		&movie.ReleaseDate, &movie.OriginalLanguage, &movie.Adult, &movie.Popularity,
		&movie.VoteAverage, &movie.VoteCount, &movie.PosterPath, &movie.CreatedAt,
		&movie.UpdatedAt, &genreIDs)
	if err != nil {
		return nil, err
	}

	movie.GenreIDs = make([]uuid.UUID, 0, len(genreIDs))
	for _, raw := range genreIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid genre id %q: %w", raw, err)
		}
		movie.GenreIDs = append(movie.GenreIDs, id)
	}

	return movie, nil
}

// Create creates a new movie and its genre links in one transaction
func (r *repository) Create(ctx context.Context, movie *model.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO movies (id, title, original_title, overview, release_date, original_language,
			adult, popularity, vote_average, vote_count, poster_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err = tx.ExecContext(ctx, query,
		movie.ID, movie.Title, movie.OriginalTitle, movie.Overview, movie.ReleaseDate,
		movie.OriginalLanguage, movie.Adult, movie.Popularity, movie.VoteAverage,
		movie.VoteCount, movie.PosterPath, movie.CreatedAt, movie.UpdatedAt)
	if err != nil {
		return err
	}

	err = insertGenreLinks(ctx, tx, movie.ID, movie.GenreIDs)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a movie by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, selectMovie+` WHERE m.id = $1`, id)

	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // movie not found
		}
		return nil, err
	}

	return movie, nil
}

// GetAll retrieves movies matching filter with pagination, newest first
func (r *repository) GetAll(ctx context.Context, filter model.MovieFilter, limit, offset int) ([]model.Movie, int, error) {
	where, args := buildFilter(filter)

	// get total count
	var totalCount int
	countQuery := "SELECT COUNT(*) FROM movies m" + where
	err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get movies count: %w", err)
	}

	// get movies with pagination
	query := fmt.Sprintf("%s%s ORDER BY m.created_at DESC, m.id LIMIT $%d OFFSET $%d",
		selectMovie, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []model.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, *movie)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return movies, totalCount, nil
}

// buildFilter renders the WHERE clause for a listing filter
func buildFilter(filter model.MovieFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.GenreID != nil {
		args = append(args, *filter.GenreID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.id AND mg.genre_id = $%d)", len(args)))
	}

	if filter.Title != "" {
		args = append(args, "%"+escapeLike(filter.Title)+"%")
		conditions = append(conditions, fmt.Sprintf("m.title ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike escapes the LIKE wildcards in user input
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

// Update updates a movie and replaces its genre links
func (r *repository) Update(ctx context.Context, movie *model.Movie) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE movies
		SET title = $2, original_title = $3, overview = $4, release_date = $5,
			original_language = $6, adult = $7, popularity = $8, vote_average = $9,
			vote_count = $10, updated_at = $11
		WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, movie.ID, movie.Title, movie.OriginalTitle,
		movie.Overview, movie.ReleaseDate, movie.OriginalLanguage, movie.Adult,
		movie.Popularity, movie.VoteAverage, movie.VoteCount, movie.UpdatedAt)
	if err != nil {
		return err
	}

	err = checkAffected(result)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movie.ID)
	if err != nil {
		return err
	}

	err = insertGenreLinks(ctx, tx, movie.ID, movie.GenreIDs)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// UpdatePoster sets the poster storage path
func (r *repository) UpdatePoster(ctx context.Context, id uuid.UUID, posterPath string, updatedAt time.Time) error {
	query := `UPDATE movies SET poster_path = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, posterPath, updatedAt)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

// Delete deletes a movie from the database
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

func insertGenreLinks(ctx context.Context, tx *sql.Tx, movieID uuid.UUID, genreIDs []uuid.UUID) error {
	for _, genreID := range genreIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			movieID, genreID)
		if err != nil {
			return err
		}
	}
	return nil
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
