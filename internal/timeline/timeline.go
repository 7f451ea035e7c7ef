// Package timeline projects a resource's current status onto a fixed,
// ordered list of steps. It is a pure projection: the server is the sole
// authority for status changes and nothing here performs a transition.
package timeline

import (
	"time"

	"github.com/salonhub/salonhub-go/internal/domain"
)

type Step struct {
	Name      string
	Reached   bool
	Timestamp *time.Time
}

var bookingSteps = []string{"pending", "confirmed", "in_progress", "completed"}

var orderSteps = []string{"pending", "confirmed", "processing", "shipped", "delivered"}

// ForBooking projects a service booking onto the booking step list.
func ForBooking(b domain.Booking) []Step {
	timestamps := map[string]*time.Time{
		"pending":     &b.CreatedAt,
		"confirmed":   b.ConfirmedAt,
		"in_progress": b.StartedAt,
		"completed":   b.CompletedAt,
	}
	return project(bookingSteps, b.Status, timestamps)
}

// ForOrder projects a product order onto the order step list.
func ForOrder(o domain.Order) []Step {
	timestamps := map[string]*time.Time{
		"pending":    &o.CreatedAt,
		"confirmed":  o.ConfirmedAt,
		"processing": o.ProcessedAt,
		"shipped":    o.ShippedAt,
		"delivered":  o.DeliveredAt,
	}
	return project(orderSteps, o.Status, timestamps)
}

// project marks every step up to and including the current status as
// reached. An unmatched status yields index -1, so nothing is reached.
func project(steps []string, status string, timestamps map[string]*time.Time) []Step {
	current := -1
	for i, name := range steps {
		if name == status {
			current = i
			break
		}
	}

	out := make([]Step, len(steps))
	for i, name := range steps {
		out[i] = Step{
			Name:      name,
			Reached:   current >= 0 && i <= current,
			Timestamp: timestamps[name],
		}
	}
	return out
}
