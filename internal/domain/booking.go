package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Booking is immutable once created. There is no update or cancellation
// path: a booked seat never becomes available again.
type Booking struct {
	ID            uuid.UUID
	ShowtimeID    int
	CustomerName  string
	CustomerEmail string
	TotalAmount   int64
	CreatedAt     time.Time
	Seats         []SeatID
}

// BookingDetail is a booking joined with the catalog names a confirmation
// page needs.
type BookingDetail struct {
	Booking
	MovieTitle  string
	PosterURL   string
	TheaterName string
	ShowDate    time.Time
	StartTime   time.Time
}

type CreateBookingParams struct {
	ShowtimeID    int
	Seats         []SeatID
	CustomerName  string
	CustomerEmail string
}

type BookingRepository interface {
	// Create resolves the requested seats, re-checks their availability and
	// books them in one atomic unit: the booking record, the seat flips and
	// the counter decrement commit together or not at all.
	//
	// It returns ErrRecordNotFound if the showtime or any seat does not
	// exist, ErrSeatAlreadyBooked if any seat lost the race, and
	// ErrStorageContention if transient storage failures exhausted the
	// bounded retries.
	Create(ctx context.Context, params CreateBookingParams) (*Booking, error)
	GetById(ctx context.Context, id uuid.UUID) (*BookingDetail, error)
}
