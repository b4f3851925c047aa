package windows

import (
	"fmt"
	"time"

	"kitchen-orders/internal/models"
)

// Evaluate determines whether ordering is open at the given instant and
// builds the countdown label shown on the home page. A window is open on
// the half-open interval [OrderingStart, OrderingEnd): an instant equal to
// OrderingEnd is already closed. When several windows contain the instant,
// the one with the earliest start wins so the result is reproducible.
//
// Evaluate is a pure function of its inputs; callers re-run it on a fixed
// cadence and must get identical output for identical inputs.
func Evaluate(ws []models.OrderingWindow, now time.Time) models.WindowStatus {
	var current *models.OrderingWindow
	for i := range ws {
		w := &ws[i]
		if !now.Before(w.OrderingStart) && now.Before(w.OrderingEnd) {
			if current == nil || w.OrderingStart.Before(current.OrderingStart) {
				current = w
			}
		}
	}
	if current != nil {
		end := current.OrderingEnd
		return models.WindowStatus{
			Open:     true,
			Boundary: &end,
			Label:    "Ordering closes in " + formatCountdown(end.Sub(now)),
		}
	}

	var next *models.OrderingWindow
	for i := range ws {
		w := &ws[i]
		if w.OrderingStart.After(now) {
			if next == nil || w.OrderingStart.Before(next.OrderingStart) {
				next = w
			}
		}
	}
	if next != nil {
		start := next.OrderingStart
		return models.WindowStatus{
			Open:     false,
			Boundary: &start,
			Label:    "Ordering opens in " + formatCountdown(start.Sub(now)),
		}
	}

	return models.WindowStatus{Open: false, Label: "No upcoming windows"}
}

// formatCountdown renders a duration as "{h}h {m}m {s}s": integer parts
// floored from the millisecond difference, no zero padding, zero units kept.
func formatCountdown(d time.Duration) string {
	ms := d.Milliseconds()
	hours := ms / (1000 * 60 * 60)
	minutes := (ms % (1000 * 60 * 60)) / (1000 * 60)
	seconds := (ms % (1000 * 60)) / 1000
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
