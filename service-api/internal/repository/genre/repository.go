package genre

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movies-api/pkg/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var ErrNotFound = errors.New("genre not found")

// Repository defines the genre repository interface
type Repository interface {
	Create(ctx context.Context, genre *model.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	GetAll(ctx context.Context) ([]model.Genre, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
	Update(ctx context.Context, genre *model.Genre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// repository implements the genre repository
type repository struct {
	db *sql.DB
}

// NewRepository creates a new genre repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// Create inserts a genre
func (r *repository) Create(ctx context.Context, genre *model.Genre) error {
	query := `INSERT INTO genres (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, genre.ID, genre.Name, genre.CreatedAt)
	return err
}

// GetByID retrieves a genre by ID, returning nil when it does not exist
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	genre := &model.Genre{}
	query := `SELECT id, name, created_at FROM genres WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(&genre.ID, &genre.Name, &genre.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return genre, nil
}

// GetAll retrieves every genre ordered by name
func (r *repository) GetAll(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer rows.Close()

	genres := []model.Genre{}
	for rows.Next() {
		var genre model.Genre
		err := rows.Scan(&genre.ID, &genre.Name, &genre.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return genres, nil
}

// CountExisting returns how many of ids exist
func (r *repository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var count int
	query := `SELECT COUNT(*) FROM genres WHERE id = ANY($1::uuid[])`
	err := r.db.QueryRowContext(ctx, query, pq.Array(raw)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count genres: %w", err)
	}

	return count, nil
}

// Update renames a genre
func (r *repository) Update(ctx context.Context, genre *model.Genre) error {
	result, err := r.db.ExecContext(ctx, `UPDATE genres SET name = $2 WHERE id = $1`, genre.ID, genre.Name)
	if err != nil {
		return err
	}

	return checkAffected(result)
}

// Delete removes a genre; movie links cascade
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return checkAffected(result)
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
