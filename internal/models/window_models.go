package models

import "time"

// OrderingWindow is an admin-defined interval during which customers may
// submit orders, tied to one pickup date and its offered pickup time labels.
// Windows are advisory: they drive what the order form offers, but order
// creation does not re-check them.
type OrderingWindow struct {
	ID            string    `json:"id"`
	OrderingStart time.Time `json:"ordering_start"`
	OrderingEnd   time.Time `json:"ordering_end"`
	PickupDate    time.Time `json:"pickup_date"`
	PickupTimes   []string  `json:"pickup_times"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateOrderingWindowRequest represents the data needed to create a window.
type CreateOrderingWindowRequest struct {
	OrderingStart time.Time `json:"ordering_start" validate:"required"`
	OrderingEnd   time.Time `json:"ordering_end" validate:"required"`
	PickupDate    time.Time `json:"pickup_date" validate:"required"`
	PickupTimes   []string  `json:"pickup_times" validate:"required,min=1,dive,required"`
}

// WindowStatus is the result of evaluating the ordering windows at an
// instant: whether ordering is open, the relevant boundary, and a
// human-readable countdown label.
type WindowStatus struct {
	Open     bool       `json:"open"`
	Boundary *time.Time `json:"boundary,omitempty"`
	Label    string     `json:"label"`
}
