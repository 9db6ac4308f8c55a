package model

import (
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// GenreRequest represents the payload for creating or renaming a genre
type GenreRequest struct {
	Name string `json:"name" form:"name" binding:"required,notblank,max=100"`
}

// GenreListResponse wraps the genre collection
type GenreListResponse struct {
	Genres []Genre `json:"genres"`
}
