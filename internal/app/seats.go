package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cinetixhq/booking-api/api"
	"github.com/cinetixhq/booking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Seat map responses are cached briefly. Serving a slightly stale snapshot
// is safe: the authoritative availability check happens inside the booking
// transaction regardless of what was displayed earlier.
const seatMapCacheTTL = 5 * time.Second

func seatMapCacheKey(showtimeID int) string {
	return fmt.Sprintf("seatmap:%d", showtimeID)
}

func (app *Application) GetSeatMapByShowtime(
	w http.ResponseWriter,
	r *http.Request,
	showtimeID int) {

	logger := app.contextGetLogger(r)

	if showtimeID < 1 {
		app.badRequestResponse(w, r, fmt.Errorf("showtime ID must be greater than zero"))
		return
	}

	if cached, ok := app.cachedSeatMap(r.Context(), showtimeID); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	// First access materializes the grid; every later call is a no-op.
	err = app.seatRepo.MaterializeSeats(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.GetSeatsByShowtime(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(showtime, seats)

	app.cacheSeatMap(r.Context(), logger, showtimeID, resp)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) cachedSeatMap(ctx context.Context, showtimeID int) ([]byte, bool) {
	if app.redis == nil {
		return nil, false
	}

	cached, err := app.redis.Get(ctx, seatMapCacheKey(showtimeID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Warn("seat map cache read failed", "error", err)
		}
		return nil, false
	}

	return cached, true
}

func (app *Application) cacheSeatMap(ctx context.Context, logger *slog.Logger, showtimeID int, resp api.SeatMapResponse) {
	if app.redis == nil {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Warn("failed to marshal seat map for cache", "error", err)
		return
	}

	err = app.redis.Set(ctx, seatMapCacheKey(showtimeID), payload, seatMapCacheTTL).Err()
	if err != nil {
		logger.Warn("seat map cache write failed", "error", err)
	}
}

// invalidateSeatMapCache drops the cached seat map after a booking flipped
// seat state. Failure only extends staleness by the TTL, so it is logged and
// ignored.
func (app *Application) invalidateSeatMapCache(ctx context.Context, showtimeID int) {
	if app.redis == nil {
		return
	}

	err := app.redis.Del(ctx, seatMapCacheKey(showtimeID)).Err()
	if err != nil {
		app.logger.Warn("seat map cache invalidation failed", "showtime_id", showtimeID, "error", err)
	}
}

func toSeatMapResponse(showtime *domain.Showtime, seats []domain.Seat) api.SeatMapResponse {
	apiSeats := make([]api.Seat, len(seats))

	for i, seat := range seats {
		status := api.SeatAvailable
		if seat.Booked {
			status = api.SeatBooked
		}

		apiSeats[i] = api.Seat{
			Id:     seat.SeatID().String(),
			Row:    seat.Row,
			Number: seat.Number,
			Status: status,
		}
	}

	return api.SeatMapResponse{
		Showtime: api.ShowtimeInfo{
			Id:      showtime.ID,
			Movie:   showtime.MovieTitle,
			Date:    showtime.ShowDate.Format("2006-01-02"),
			Time:    showtime.StartTime.Format("15:04"),
			Theater: showtime.TheaterName,
			Price:   showtime.Price,
		},
		Seats: apiSeats,
	}
}
