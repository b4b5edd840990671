package domain

import "context"

type Movie struct {
	ID          int
	Title       string
	Description string
	PosterURL   string
	Duration    int
	Genre       string
	Rating      string
	ImdbRating  float64
	ReleaseYear int
	Showtimes   []Showtime
}

// MovieRepository is a read-only catalog collaborator; the booking core
// never mutates it.
type MovieRepository interface {
	GetAll(ctx context.Context) ([]Movie, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
