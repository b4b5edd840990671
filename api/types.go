// Package api holds the request and response types of the public HTTP
// surface.
package api

import "time"

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type MovieSummary struct {
	Id          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PosterUrl   string  `json:"posterUrl"`
	Duration    int     `json:"duration"`
	Genre       string  `json:"genre"`
	Rating      string  `json:"rating"`
	ImdbRating  float64 `json:"imdbRating"`
	ReleaseYear int     `json:"releaseYear"`
}

type MovieListResponse struct {
	Movies []MovieSummary `json:"movies"`
}

type ShowtimeSummary struct {
	Id             int    `json:"id"`
	Theater        string `json:"theater"`
	TheaterType    string `json:"theaterType"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Price          int64  `json:"price"`
	AvailableSeats int    `json:"availableSeats"`
}

type MovieDetailResponse struct {
	MovieSummary
	Showtimes []ShowtimeSummary `json:"showtimes"`
}

// SeatStatus is derived purely from the seat's booked flag. The server never
// stores a transient "selected" state; that is a client-side concern.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

type Seat struct {
	Id     string     `json:"id"`
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
}

type ShowtimeInfo struct {
	Id      int    `json:"id"`
	Movie   string `json:"movieTitle"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Theater string `json:"theater"`
	Price   int64  `json:"price"`
}

type SeatMapResponse struct {
	Showtime ShowtimeInfo `json:"showtime"`
	Seats    []Seat       `json:"seats"`
}

type CreateBookingRequest struct {
	ShowtimeId      int      `json:"showtimeId" validate:"required,gt=0"`
	SeatIdentifiers []string `json:"seatIdentifiers" validate:"required,min=1,unique,dive,seat_id"`
	CustomerName    string   `json:"customerName" validate:"required,max=100"`
	CustomerEmail   string   `json:"customerEmail" validate:"required,email"`
}

type Booking struct {
	Id            string    `json:"id"`
	MovieTitle    string    `json:"movieTitle"`
	PosterUrl     string    `json:"posterUrl,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Theater       string    `json:"theater"`
	Seats         []string  `json:"seats"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	TotalAmount   int64     `json:"totalAmount"`
	BookingDate   time.Time `json:"bookingDate"`
}

type CreateBookingResponse struct {
	BookingId   string   `json:"bookingId"`
	Message     string   `json:"message"`
	Seats       []string `json:"seats"`
	TotalAmount int64    `json:"totalAmount"`
	Booking     Booking  `json:"booking"`
}

type BookingResponse struct {
	Booking
}
