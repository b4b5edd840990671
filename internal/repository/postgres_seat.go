package repository

import (
	"context"

	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresSeatRepository struct {
	db     *pgxpool.Pool
	layout domain.SeatLayout
}

func NewPostgresSeatRepository(db *pgxpool.Pool, layout domain.SeatLayout) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db:     db,
		layout: layout,
	}
}

// MaterializeSeats creates the full seat grid for a showtime if it does not
// exist yet. The uniqueness constraint on (showtime_id, seat_row, seat_number)
// makes concurrent first reads safe: each row is created at most once, and a
// losing insert is simply a no-op.
func (p *PostgresSeatRepository) MaterializeSeats(ctx context.Context, showtimeID int) error {
	query := `
		INSERT INTO seats (showtime_id, seat_row, seat_number)
		SELECT $1, r, n
		FROM unnest(string_to_array($2, NULL)) AS r,
			generate_series(1, $3) AS n
		ON CONFLICT (showtime_id, seat_row, seat_number) DO NOTHING
	`

	_, err := p.db.Exec(ctx, query, showtimeID, p.layout.Rows, p.layout.SeatsPerRow)

	return err
}

func (p *PostgresSeatRepository) GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	query := `
		SELECT id, showtime_id, TRIM(seat_row), seat_number, booked, booking_id
		FROM seats
		WHERE showtime_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(
			&seat.ID,
			&seat.ShowtimeID,
			&seat.Row,
			&seat.Number,
			&seat.Booked,
			&seat.BookingID,
		)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
