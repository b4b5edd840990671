package repository

import (
	"context"
	"errors"

	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	query := `
		SELECT
			sh.id,
			sh.movie_id,
			sh.theater_id,
			m.title,
			t.name,
			t.theater_type,
			sh.show_date,
			sh.start_time,
			sh.price,
			sh.available_seats
		FROM showtimes sh
		JOIN movies m ON sh.movie_id = m.id
		JOIN theaters t ON sh.theater_id = t.id
		WHERE sh.id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.MovieTitle,
		&showtime.TheaterName,
		&showtime.TheaterType,
		&showtime.ShowDate,
		&showtime.StartTime,
		&showtime.Price,
		&showtime.AvailableSeats,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

const reconcileMaxAttempts = 3

// ReconcileAvailableSeats treats the counter as derived state: whenever it
// disagrees with the count of unbooked seat records, the seat records win.
// Showtimes without materialized seats are skipped, since their counter still
// reflects the not-yet-created grid.
//
// The recompute runs in a REPEATABLE READ transaction so a booking committing
// mid-statement cannot make the update write a count taken from an older
// snapshot of the seats table. Serialization failures are retried.
func (p *PostgresShowtimeRepository) ReconcileAvailableSeats(ctx context.Context) ([]domain.CounterDrift, error) {
	for attempt := 1; ; attempt++ {
		drifts, err := p.reconcileInTx(ctx)

		if err == nil || !isTransient(err) {
			return drifts, err
		}

		if attempt == reconcileMaxAttempts {
			return nil, err
		}
	}
}

func (p *PostgresShowtimeRepository) reconcileInTx(ctx context.Context) ([]domain.CounterDrift, error) {
	// The self-join on stale exposes the pre-update counter in RETURNING.
	query := `
		UPDATE showtimes sh
		SET available_seats = c.unbooked
		FROM (
			SELECT showtime_id, COUNT(*) FILTER (WHERE NOT booked) AS unbooked
			FROM seats
			GROUP BY showtime_id
		) c, showtimes stale
		WHERE sh.id = c.showtime_id
			AND stale.id = sh.id
			AND sh.available_seats <> c.unbooked
		RETURNING sh.id, stale.available_seats, c.unbooked
	`

	drifts := make([]domain.CounterDrift, 0)

	txOptions := pgx.TxOptions{IsoLevel: pgx.RepeatableRead}

	err := runInTxOptions(ctx, p.db, txOptions, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var drift domain.CounterDrift

			err = rows.Scan(&drift.ShowtimeID, &drift.Counter, &drift.Actual)
			if err != nil {
				return err
			}

			drifts = append(drifts, drift)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return drifts, nil
}
