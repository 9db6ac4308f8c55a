// Package seed loads a small demo catalogue into an empty database.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"movies-api/pkg/logger"
	"movies-api/pkg/model"
	genreRepo "movies-api/service-api/internal/repository/genre"
	movieRepo "movies-api/service-api/internal/repository/movie"

	"github.com/google/uuid"
)

//go:embed seed.json
var seedJSON []byte

type catalogue struct {
	Genres []string    `json:"genres"`
	Movies []seedMovie `json:"movies"`
}

type seedMovie struct {
	model.MovieRequest
	Genres []string `json:"genres"`
}

// Run inserts the embedded genres and movies when the genres table is empty.
// It reports whether anything was inserted.
func Run(ctx context.Context, genres genreRepo.Repository, movies movieRepo.Repository) (bool, error) {
	existing, err := genres.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check existing genres: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("database already holds genres, skipping seed")
		return false, nil
	}

	var data catalogue
	err = json.Unmarshal(seedJSON, &data)
	if err != nil {
		return false, fmt.Errorf("failed to decode seed data: %w", err)
	}

	now := time.Now().UTC()
	genreIDs := make(map[string]uuid.UUID, len(data.Genres))
	for _, name := range data.Genres {
		genre := &model.Genre{ID: uuid.New(), Name: name, CreatedAt: now}
		err = genres.Create(ctx, genre)
		if err != nil {
			return false, fmt.Errorf("failed to seed genre %q: %w", name, err)
		}
		genreIDs[name] = genre.ID
	}

	for _, item := range data.Movies {
		movie := &model.Movie{
			ID:               uuid.New(),
			Title:            item.Title,
			OriginalTitle:    item.OriginalTitle,
			Overview:         item.Overview,
			ReleaseDate:      item.ReleaseDate,
			OriginalLanguage: item.OriginalLanguage,
			Adult:            item.Adult,
			Popularity:       item.Popularity,
			VoteAverage:      item.VoteAverage,
			VoteCount:        item.VoteCount,
			GenreIDs:         make([]uuid.UUID, 0, len(item.Genres)),
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, name := range item.Genres {
			id, ok := genreIDs[name]
			if !ok {
				return false, fmt.Errorf("seed movie %q references unknown genre %q", item.Title, name)
			}
			movie.GenreIDs = append(movie.GenreIDs, id)
		}

		err = movies.Create(ctx, movie)
		if err != nil {
			return false, fmt.Errorf("failed to seed movie %q: %w", item.Title, err)
		}
	}

	logger.Infof("seeded %d genres and %d movies", len(data.Genres), len(data.Movies))
	return true, nil
}
