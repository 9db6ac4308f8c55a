package model

import (
	"time"

	"github.com/google/uuid"
)

type Movie struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Title            string      `json:"title" db:"title"`
	OriginalTitle    string      `json:"original_title" db:"original_title"`
	Overview         string      `json:"overview" db:"overview"`
	ReleaseDate      string      `json:"release_date" db:"release_date"` // YYYY-MM-DD, empty when unknown
	OriginalLanguage string      `json:"original_language" db:"original_language"`
	Adult            bool        `json:"adult" db:"adult"`
	Popularity       float64     `json:"popularity" db:"popularity"`
	VoteAverage      float64     `json:"vote_average" db:"vote_average"`
	VoteCount        int         `json:"vote_count" db:"vote_count"`
	PosterPath       string      `json:"poster_path" db:"poster_path"` // storage path of the uploaded poster
	GenreIDs         []uuid.UUID `json:"genre_ids"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// MovieRequest is the payload for creating or replacing a movie.
// Both JSON and url-encoded form bodies bind to it.
type MovieRequest struct {
	Title            string   `json:"title" form:"title" binding:"required,notblank,max=255"`
	OriginalTitle    string   `json:"original_title" form:"original_title" binding:"max=255"`
	Overview         string   `json:"overview" form:"overview"`
	ReleaseDate      string   `json:"release_date" form:"release_date" binding:"omitempty,datetime=2006-01-02"`
	OriginalLanguage string   `json:"original_language" form:"original_language" binding:"max=10"`
	Adult            bool     `json:"adult" form:"adult"`
	Popularity       float64  `json:"popularity" form:"popularity" binding:"gte=0"`
	VoteAverage      float64  `json:"vote_average" form:"vote_average" binding:"gte=0,lte=10"`
	VoteCount        int      `json:"vote_count" form:"vote_count" binding:"gte=0"`
	GenreIDs         []string `json:"genre_ids" form:"genre_ids" binding:"omitempty,dive,uuid"`
}

// MovieFilter narrows a movie listing
type MovieFilter struct {
	GenreID *uuid.UUID
	Title   string
}

// MovieListResponse represents a paginated list of movies
type MovieListResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// NewMovieListResponse builds a page of results, computing the page count
func NewMovieListResponse(movies []Movie, totalCount, page, pageSize int) *MovieListResponse {
	if movies == nil {
		movies = []Movie{}
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}

	return &MovieListResponse{
		Page:         page,
		TotalPages:   totalPages,
		TotalResults: totalCount,
		Results:      movies,
	}
}
