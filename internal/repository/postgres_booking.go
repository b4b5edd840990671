package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createMaxAttempts = 3
	createRetryDelay  = 50 * time.Millisecond
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create books the requested seats in a single transaction. The seat rows
// are locked with SELECT ... FOR UPDATE ordered by id, so two transactions
// contending for overlapping seat sets always acquire locks in the same
// order and one of them cleanly observes the other's committed flip.
//
// Serialization failures and deadlocks are retried in a fresh transaction a
// bounded number of times before surfacing ErrStorageContention.
func (p *PostgresBookingRepository) Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	var booking *domain.Booking

	for attempt := 1; ; attempt++ {
		err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
			var txErr error
			booking, txErr = p.createInTx(ctx, tx, params)
			return txErr
		})

		if err == nil {
			return booking, nil
		}

		if !isTransient(err) {
			return nil, err
		}

		if attempt == createMaxAttempts {
			return nil, domain.ErrStorageContention
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * createRetryDelay):
		}
	}
}

func (p *PostgresBookingRepository) createInTx(
	ctx context.Context,
	tx pgx.Tx,
	params domain.CreateBookingParams) (*domain.Booking, error) {

	var price int64

	err := tx.QueryRow(ctx, `SELECT price FROM showtimes WHERE id = $1`, params.ShowtimeID).Scan(&price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seatIDs, err := p.lockSeats(ctx, tx, params.ShowtimeID, params.Seats)
	if err != nil {
		return nil, err
	}

	booking := domain.Booking{
		ID:            uuid.New(),
		ShowtimeID:    params.ShowtimeID,
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		TotalAmount:   price * int64(len(params.Seats)),
		Seats:         append([]domain.SeatID(nil), params.Seats...),
	}

	query := `
		INSERT INTO bookings (id, showtime_id, customer_name, customer_email, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err = tx.QueryRow(
		ctx,
		query,
		booking.ID,
		booking.ShowtimeID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.TotalAmount).Scan(&booking.CreatedAt)

	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE seats SET booked = TRUE, booking_id = $1 WHERE id = ANY($2)`, booking.ID, seatIDs)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE showtimes SET available_seats = available_seats - $2 WHERE id = $1`,
		params.ShowtimeID,
		len(seatIDs))

	if err != nil {
		return nil, err
	}

	domain.SortSeatIDs(booking.Seats)

	return &booking, nil
}

// lockSeats resolves the requested identifiers to seat rows and locks them.
// The availability re-check happens here, under the row locks, regardless of
// what any earlier read showed.
func (p *PostgresBookingRepository) lockSeats(
	ctx context.Context,
	tx pgx.Tx,
	showtimeID int,
	seats []domain.SeatID) ([]int64, error) {

	seatRows := make([]string, len(seats))
	seatNumbers := make([]int, len(seats))

	for i, seat := range seats {
		seatRows[i] = seat.Row
		seatNumbers[i] = seat.Number
	}

	query := `
		SELECT s.id, s.booked
		FROM seats s
		JOIN unnest($2::text[], $3::int[]) AS sel(seat_row, seat_number)
			ON s.seat_row = sel.seat_row AND s.seat_number = sel.seat_number
		WHERE s.showtime_id = $1
		ORDER BY s.id
		FOR UPDATE OF s
	`

	rows, err := tx.Query(ctx, query, showtimeID, seatRows, seatNumbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatIDs := make([]int64, 0, len(seats))
	anyBooked := false

	for rows.Next() {
		var id int64
		var booked bool

		err = rows.Scan(&id, &booked)
		if err != nil {
			return nil, err
		}

		if booked {
			anyBooked = true
		}

		seatIDs = append(seatIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seatIDs) != len(seats) {
		return nil, domain.ErrRecordNotFound
	}

	if anyBooked {
		return nil, domain.ErrSeatAlreadyBooked
	}

	return seatIDs, nil
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	query := `
		SELECT
			b.id,
			b.showtime_id,
			b.customer_name,
			b.customer_email,
			b.total_amount,
			b.created_at,
			m.title,
			m.poster_url,
			t.name,
			sh.show_date,
			sh.start_time
		FROM bookings b
		JOIN showtimes sh ON b.showtime_id = sh.id
		JOIN movies m ON sh.movie_id = m.id
		JOIN theaters t ON sh.theater_id = t.id
		WHERE b.id = $1
	`

	var detail domain.BookingDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.ShowtimeID,
		&detail.CustomerName,
		&detail.CustomerEmail,
		&detail.TotalAmount,
		&detail.CreatedAt,
		&detail.MovieTitle,
		&detail.PosterURL,
		&detail.TheaterName,
		&detail.ShowDate,
		&detail.StartTime,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	seats, err := p.retrieveBookingSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.Seats = seats

	return &detail, nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(ctx context.Context, bookingID uuid.UUID) ([]domain.SeatID, error) {
	query := `
		SELECT TRIM(seat_row), seat_number
		FROM seats
		WHERE booking_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.SeatID, 0)

	for rows.Next() {
		var seat domain.SeatID

		err = rows.Scan(&seat.Row, &seat.Number)
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
