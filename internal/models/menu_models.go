package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a dish offered for a pickup day.
type MenuItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	AvailableDate time.Time       `json:"available_date"`
	Description   *string         `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateMenuItemRequest represents the data needed to create a new menu item.
type CreateMenuItemRequest struct {
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	AvailableDate time.Time       `json:"available_date" validate:"required"`
	Description   string          `json:"description,omitempty"`
}

// UpdateMenuItemRequest carries the full replacement state for a menu item.
// Every field is required except the description, matching create.
type UpdateMenuItemRequest struct {
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	AvailableDate time.Time       `json:"available_date" validate:"required"`
	Description   string          `json:"description,omitempty"`
}
