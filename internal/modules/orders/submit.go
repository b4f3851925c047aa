package orders

import (
	"strconv"
	"strings"
	"time"

	"kitchen-orders/internal/models"
)

// NormalizedOrder is a validated submission ready for persistence: fields
// trimmed, the pickup instant assembled, and only lines with a positive
// quantity kept.
type NormalizedOrder struct {
	CustomerName  string
	PhoneNumber   *string
	NotifyUpdates bool
	PickupAt      time.Time
	Instructions  *string
	Items         []models.OrderItemInput
}

// validateSubmission applies the field rules in order, stopping at the
// first failure. Line quantities are handled separately by clampItems.
func validateSubmission(req models.CreateOrderRequest) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return &models.ValidationError{Field: "customerName"}
	}
	if req.WindowID == "" || strings.TrimSpace(req.PickupTime) == "" {
		return &models.ValidationError{Field: "pickupTime"}
	}
	if req.NotifyUpdates && strings.TrimSpace(req.PhoneNumber) == "" {
		return &models.ValidationError{Field: "phoneNumber"}
	}
	return nil
}

// clampItems floors negative quantities to zero and drops lines that end up
// without a positive quantity. Negative quantities are never rejected.
func clampItems(items []models.OrderItemInput) []models.OrderItemInput {
	out := make([]models.OrderItemInput, 0, len(items))
	for _, it := range items {
		if it.Quantity < 0 {
			it.Quantity = 0
		}
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// combinePickupTime applies an "h:mm AM/PM" label (meridiem is
// case-insensitive) to the pickup date's calendar day. The arithmetic stays
// in the pickup date's own location: composing in UTC would shift the
// pickup to a neighboring day for stores west or east of it.
func combinePickupTime(pickupDate time.Time, label string) (time.Time, error) {
	hour, minute, err := parseClockLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		pickupDate.Year(), pickupDate.Month(), pickupDate.Day(),
		hour, minute, 0, 0,
		pickupDate.Location(),
	), nil
}

func parseClockLabel(label string) (hour, minute int, err error) {
	invalid := &models.ValidationError{Field: "pickupTime"}

	s := strings.ToUpper(strings.TrimSpace(label))
	var meridiem string
	switch {
	case strings.HasSuffix(s, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(s, "PM"):
		meridiem = "PM"
	default:
		return 0, 0, invalid
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, meridiem))

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, invalid
	}
	hour, err = strconv.Atoi(hh)
	if err != nil {
		return 0, 0, invalid
	}
	minute, err = strconv.Atoi(mm)
	if err != nil {
		return 0, 0, invalid
	}
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return 0, 0, invalid
	}

	if meridiem == "PM" && hour < 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour, minute, nil
}
