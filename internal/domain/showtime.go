package domain

import (
	"context"
	"time"
)

// Showtime carries the unit price in minor currency units and the
// denormalized available seats counter. The counter is only ever mutated
// inside the same transaction that flips seat records.
type Showtime struct {
	ID             int
	MovieID        int
	TheaterID      int
	MovieTitle     string
	TheaterName    string
	TheaterType    string
	ShowDate       time.Time
	StartTime      time.Time
	Price          int64
	AvailableSeats int
}

// CounterDrift reports a showtime whose available seats counter disagreed
// with the authoritative count of unbooked seats.
type CounterDrift struct {
	ShowtimeID int
	Counter    int
	Actual     int
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int) (*Showtime, error)

	// ReconcileAvailableSeats recomputes drifted counters from seat records
	// and reports every drift it repaired. Showtimes whose grid has not been
	// materialized yet are left untouched.
	ReconcileAvailableSeats(ctx context.Context) ([]CounterDrift, error)
}
