package app

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cinetixhq/booking-api/api"
	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/google/uuid"
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seatIDs, err := domain.ParseSeatIDs(input.SeatIdentifiers)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), input.ShowtimeId)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponseWithErr(w, r, fmt.Errorf("showtime not found"))
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	// A showtime's very first request may be a booking, so the grid is
	// materialized here too, not only on seat map reads.
	err = app.seatRepo.MaterializeSeats(r.Context(), showtime.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.Create(r.Context(), domain.CreateBookingParams{
		ShowtimeID:    showtime.ID,
		Seats:         seatIDs,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, fmt.Errorf("some selected seats do not exist"))
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			logger.Warn("booking conflict: seat(s) lost the race", "showtime_id", showtime.ID)
			app.editConflictResponse(w, r, fmt.Errorf("some of the selected seats are already booked"))
		case errors.Is(err, domain.ErrStorageContention):
			app.unavailableResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.invalidateSeatMapCache(r.Context(), showtime.ID)

	app.background(func() {
		app.sendBookingConfirmation(booking, showtime)
	})

	seats := formatSeatIDs(booking.Seats)

	resp := api.CreateBookingResponse{
		BookingId:   booking.ID.String(),
		Message:     "Booking created successfully",
		Seats:       seats,
		TotalAmount: booking.TotalAmount,
		Booking: api.Booking{
			Id:            booking.ID.String(),
			MovieTitle:    showtime.MovieTitle,
			Date:          showtime.ShowDate.Format("2006-01-02"),
			Time:          showtime.StartTime.Format("15:04"),
			Theater:       showtime.TheaterName,
			Seats:         seats,
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			TotalAmount:   booking.TotalAmount,
			BookingDate:   booking.CreatedAt,
		},
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingById(w http.ResponseWriter, r *http.Request, bookingID string) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	detail, err := app.bookingRepo.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingResponse{
		Booking: api.Booking{
			Id:            detail.ID.String(),
			MovieTitle:    detail.MovieTitle,
			PosterUrl:     detail.PosterURL,
			Date:          detail.ShowDate.Format("2006-01-02"),
			Time:          detail.StartTime.Format("15:04"),
			Theater:       detail.TheaterName,
			Seats:         formatSeatIDs(detail.Seats),
			CustomerName:  detail.CustomerName,
			CustomerEmail: detail.CustomerEmail,
			TotalAmount:   detail.TotalAmount,
			BookingDate:   detail.CreatedAt,
		},
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(booking *domain.Booking, showtime *domain.Showtime) {
	data := map[string]any{
		"BookingID":    booking.ID.String(),
		"CustomerName": booking.CustomerName,
		"MovieTitle":   showtime.MovieTitle,
		"Theater":      showtime.TheaterName,
		"Date":         showtime.ShowDate.Format("2006-01-02"),
		"Time":         showtime.StartTime.Format("15:04"),
		"Seats":        strings.Join(formatSeatIDs(booking.Seats), ", "),
		"TotalAmount":  fmt.Sprintf("%d.%02d", booking.TotalAmount/100, booking.TotalAmount%100),
	}

	err := app.mailer.Send(booking.CustomerEmail, "booking_confirmation.tmpl", data)
	if err != nil {
		app.logger.Error("failed to send booking confirmation email", "booking_id", booking.ID, "error", err)
	}
}

func formatSeatIDs(seatIDs []domain.SeatID) []string {
	seats := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		seats[i] = seatID.String()
	}

	return seats
}
