package models

import "time"

// Order represents a customer pickup order. Orders are immutable after
// creation except for the picked-up flag, which admins toggle.
type Order struct {
	ID            string      `json:"id"`
	CustomerName  string      `json:"customer_name"`
	PhoneNumber   *string     `json:"phone_number,omitempty"`
	NotifyUpdates bool        `json:"notify_updates"`
	PickupAt      time.Time   `json:"pickup_at"`
	Instructions  *string     `json:"instructions,omitempty"`
	PickedUp      bool        `json:"picked_up"`
	Items         []OrderLine `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderLine is one line of an order. A line never outlives its order; many
// lines may reference the same menu item.
type OrderLine struct {
	ID         string    `json:"id"`
	MenuItemID string    `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
}

// OrderItemInput is one submitted line of a new order.
type OrderItemInput struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity"`
}

// CreateOrderRequest represents a raw customer submission. The pickup
// instant is assembled server-side from the window's pickup date and the
// chosen time-of-day label.
type CreateOrderRequest struct {
	CustomerName  string           `json:"customer_name"`
	PhoneNumber   string           `json:"phone_number,omitempty"`
	NotifyUpdates bool             `json:"notify_updates"`
	WindowID      string           `json:"window_id"`
	PickupTime    string           `json:"pickup_time"` // e.g. "1:30 PM"
	Instructions  string           `json:"instructions,omitempty"`
	Items         []OrderItemInput `json:"items" validate:"dive"`
}

// UpdatePickedRequest sets the picked-up flag on an order.
type UpdatePickedRequest struct {
	PickedUp bool `json:"picked_up"`
}
