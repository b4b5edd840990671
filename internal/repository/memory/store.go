// Package memory provides an in-memory implementation of the storage ports
// honoring the same atomicity contract as the postgres repositories. It backs
// the coordinator and concurrency property tests, where spinning up a real
// database is not warranted.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	layout    domain.SeatLayout
	movies    map[int]domain.Movie
	showtimes map[int]*domain.Showtime
	seats     map[int][]*domain.Seat // keyed by showtime id, ordered row then number
	bookings  map[uuid.UUID]*domain.Booking
	nextSeat  int64
}

func NewStore(layout domain.SeatLayout) *Store {
	return &Store{
		layout:    layout,
		movies:    make(map[int]domain.Movie),
		showtimes: make(map[int]*domain.Showtime),
		seats:     make(map[int][]*domain.Seat),
		bookings:  make(map[uuid.UUID]*domain.Booking),
	}
}

// AddMovie seeds a catalog entry.
func (s *Store) AddMovie(movie domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.movies[movie.ID] = movie
}

// AddShowtime seeds a showtime; the seat grid stays unmaterialized until the
// first access, exactly like the durable store.
func (s *Store) AddShowtime(showtime domain.Showtime) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := showtime
	s.showtimes[st.ID] = &st
}

func (s *Store) MaterializeSeats(ctx context.Context, showtimeID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.showtimes[showtimeID]; !ok {
		return domain.ErrRecordNotFound
	}

	return s.materializeLocked(showtimeID)
}

func (s *Store) materializeLocked(showtimeID int) error {
	if len(s.seats[showtimeID]) > 0 {
		return nil
	}

	grid := make([]*domain.Seat, 0, s.layout.Capacity())

	for _, row := range s.layout.Rows {
		for number := 1; number <= s.layout.SeatsPerRow; number++ {
			s.nextSeat++
			grid = append(grid, &domain.Seat{
				ID:         s.nextSeat,
				ShowtimeID: showtimeID,
				Row:        string(row),
				Number:     number,
			})
		}
	}

	s.seats[showtimeID] = grid

	return nil
}

func (s *Store) GetSeatsByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := make([]domain.Seat, 0, len(s.seats[showtimeID]))
	for _, seat := range s.seats[showtimeID] {
		seats = append(seats, *seat)
	}

	return seats, nil
}

func (s *Store) GetShowtimeById(ctx context.Context, id int) (*domain.Showtime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	showtime, ok := s.showtimes[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	st := *showtime

	return &st, nil
}

func (s *Store) ReconcileAvailableSeats(ctx context.Context) ([]domain.CounterDrift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drifts := make([]domain.CounterDrift, 0)

	for id, showtime := range s.showtimes {
		grid := s.seats[id]
		if len(grid) == 0 {
			continue
		}

		unbooked := 0
		for _, seat := range grid {
			if !seat.Booked {
				unbooked++
			}
		}

		if showtime.AvailableSeats != unbooked {
			drifts = append(drifts, domain.CounterDrift{
				ShowtimeID: id,
				Counter:    showtime.AvailableSeats,
				Actual:     unbooked,
			})
			showtime.AvailableSeats = unbooked
		}
	}

	return drifts, nil
}

// CreateBooking performs the whole check-then-act sequence under the store
// mutex, which is this store's equivalent of the row locks the postgres
// implementation takes: no interleaving can observe a partially booked set.
func (s *Store) CreateBooking(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	showtime, ok := s.showtimes[params.ShowtimeID]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	grid := s.seats[params.ShowtimeID]

	byID := make(map[domain.SeatID]*domain.Seat, len(grid))
	for _, seat := range grid {
		byID[seat.SeatID()] = seat
	}

	resolved := make([]*domain.Seat, 0, len(params.Seats))

	for _, seatID := range params.Seats {
		seat, ok := byID[seatID]
		if !ok {
			return nil, domain.ErrRecordNotFound
		}

		resolved = append(resolved, seat)
	}

	for _, seat := range resolved {
		if seat.Booked {
			return nil, domain.ErrSeatAlreadyBooked
		}
	}

	booking := &domain.Booking{
		ID:            uuid.New(),
		ShowtimeID:    params.ShowtimeID,
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		TotalAmount:   showtime.Price * int64(len(params.Seats)),
		CreatedAt:     time.Now(),
		Seats:         append([]domain.SeatID(nil), params.Seats...),
	}

	for _, seat := range resolved {
		seat.Booked = true
		bookingID := booking.ID
		seat.BookingID = &bookingID
	}

	showtime.AvailableSeats -= len(resolved)

	domain.SortSeatIDs(booking.Seats)
	s.bookings[booking.ID] = booking

	return booking, nil
}

func (s *Store) GetBookingById(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	showtime := s.showtimes[booking.ShowtimeID]
	movie := s.movies[showtime.MovieID]

	detail := &domain.BookingDetail{
		Booking:     *booking,
		MovieTitle:  movie.Title,
		PosterURL:   movie.PosterURL,
		TheaterName: showtime.TheaterName,
		ShowDate:    showtime.ShowDate,
		StartTime:   showtime.StartTime,
	}

	return detail, nil
}

// Showtimes, Seats and Bookings expose the store through the repository
// ports, resolving the method name clash between the showtime and booking
// GetById operations.

type showtimeView struct{ *Store }

func (v showtimeView) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	return v.GetShowtimeById(ctx, id)
}

type bookingView struct{ *Store }

func (v bookingView) Create(ctx context.Context, params domain.CreateBookingParams) (*domain.Booking, error) {
	return v.CreateBooking(ctx, params)
}

func (v bookingView) GetById(ctx context.Context, id uuid.UUID) (*domain.BookingDetail, error) {
	return v.GetBookingById(ctx, id)
}

func (s *Store) Showtimes() domain.ShowtimeRepository {
	return showtimeView{s}
}

func (s *Store) Seats() domain.SeatRepository {
	return s
}

func (s *Store) Bookings() domain.BookingRepository {
	return bookingView{s}
}
