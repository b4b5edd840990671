package repository

import (
	"context"
	"errors"

	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, duration_minutes, genre, rating, imdb_rating, release_year
		FROM movies
		ORDER BY title
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Description,
			&movie.PosterURL,
			&movie.Duration,
			&movie.Genre,
			&movie.Rating,
			&movie.ImdbRating,
			&movie.ReleaseYear,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, poster_url, duration_minutes, genre, rating, imdb_rating, release_year
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Description,
		&movie.PosterURL,
		&movie.Duration,
		&movie.Genre,
		&movie.Rating,
		&movie.ImdbRating,
		&movie.ReleaseYear,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	showtimes, err := p.retrieveShowtimes(ctx, id)
	if err != nil {
		return nil, err
	}

	movie.Showtimes = showtimes

	return &movie, nil
}

func (p *PostgresMovieRepository) retrieveShowtimes(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	query := `
		SELECT
			sh.id,
			sh.movie_id,
			sh.theater_id,
			t.name,
			t.theater_type,
			sh.show_date,
			sh.start_time,
			sh.price,
			sh.available_seats
		FROM showtimes sh
		JOIN theaters t ON sh.theater_id = t.id
		WHERE sh.movie_id = $1
		ORDER BY sh.start_time
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheaterID,
			&showtime.TheaterName,
			&showtime.TheaterType,
			&showtime.ShowDate,
			&showtime.StartTime,
			&showtime.Price,
			&showtime.AvailableSeats,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
