package app

import (
	"context"
	"time"
)

// runCounterReconciler periodically recomputes drifted available-seat
// counters from seat records. The counter is derived state: when it
// disagrees with the seat records, the records win. Drift should never
// happen, since the counter is only mutated inside the booking transaction,
// so every repair is logged for investigation.
func (app *Application) runCounterReconciler(done <-chan struct{}) {
	interval := app.config.ReconcileInterval
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			app.reconcileCounters()
		}
	}
}

func (app *Application) reconcileCounters() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	drifts, err := app.showtimeRepo.ReconcileAvailableSeats(ctx)
	if err != nil {
		app.logger.Error("failed to reconcile available seats counters", "error", err)
		return
	}

	for _, drift := range drifts {
		app.logger.Error(
			"available seats counter drifted from seat records, recomputed",
			"showtime_id", drift.ShowtimeID,
			"counter", drift.Counter,
			"actual", drift.Actual,
		)
	}
}
