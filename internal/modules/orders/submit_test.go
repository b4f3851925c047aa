package orders

import (
	"errors"
	"testing"
	"time"

	"kitchen-orders/internal/models"
)

func validRequest() models.CreateOrderRequest {
	return models.CreateOrderRequest{
		CustomerName: "Ada",
		WindowID:     "w1",
		PickupTime:   "10:00 AM",
		Items:        []models.OrderItemInput{{MenuItemID: "m1", Quantity: 1}},
	}
}

func wantFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v; want ValidationError", err)
	}
	if ve.Field != field {
		t.Errorf("ValidationError.Field = %q; want %q", ve.Field, field)
	}
}

func TestValidateSubmissionOrder(t *testing.T) {
	req := validRequest()
	req.CustomerName = "   "
	wantFieldError(t, validateSubmission(req), "customerName")

	req = validRequest()
	req.PickupTime = ""
	wantFieldError(t, validateSubmission(req), "pickupTime")

	req = validRequest()
	req.WindowID = ""
	wantFieldError(t, validateSubmission(req), "pickupTime")

	req = validRequest()
	req.NotifyUpdates = true
	req.PhoneNumber = ""
	wantFieldError(t, validateSubmission(req), "phoneNumber")

	req = validRequest()
	req.NotifyUpdates = true
	req.PhoneNumber = "555-555-1234"
	if err := validateSubmission(req); err != nil {
		t.Errorf("validateSubmission(valid) = %v; want nil", err)
	}
}

func TestClampItems(t *testing.T) {
	items := []models.OrderItemInput{
		{MenuItemID: "a", Quantity: -3},
		{MenuItemID: "b", Quantity: 2},
		{MenuItemID: "c", Quantity: 0},
	}
	got := clampItems(items)
	if len(got) != 1 {
		t.Fatalf("clampItems kept %d lines; want 1", len(got))
	}
	if got[0].MenuItemID != "b" || got[0].Quantity != 2 {
		t.Errorf("clampItems kept %+v; want b x2", got[0])
	}
}

func TestCombinePickupTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	pickupDate := time.Date(2025, 2, 3, 0, 0, 0, 0, loc)

	got, err := combinePickupTime(pickupDate, "1:30 PM")
	if err != nil {
		t.Fatalf("combinePickupTime error: %v", err)
	}
	if got.Hour() != 13 || got.Minute() != 30 {
		t.Errorf("got %02d:%02d; want 13:30", got.Hour(), got.Minute())
	}
	if got.Year() != 2025 || got.Month() != time.February || got.Day() != 3 {
		t.Errorf("got date %v; want same calendar day 2025-02-03", got)
	}
	if got.Location() != loc {
		t.Errorf("got location %v; want %v", got.Location(), loc)
	}
}

func TestCombinePickupTimeMeridiem(t *testing.T) {
	pickupDate := time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)
	tests := []struct {
		label     string
		hour, min int
	}{
		{"12:00 AM", 0, 0},
		{"12:15 pm", 12, 15},
		{"1:30 pm", 13, 30},
		{"11:59 PM", 23, 59},
		{"10:00am", 10, 0},
	}
	for _, tt := range tests {
		got, err := combinePickupTime(pickupDate, tt.label)
		if err != nil {
			t.Errorf("combinePickupTime(%q) error: %v", tt.label, err)
			continue
		}
		if got.Hour() != tt.hour || got.Minute() != tt.min {
			t.Errorf("combinePickupTime(%q) = %02d:%02d; want %02d:%02d",
				tt.label, got.Hour(), got.Minute(), tt.hour, tt.min)
		}
	}
}

func TestCombinePickupTimeInvalid(t *testing.T) {
	pickupDate := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	for _, label := range []string{"", "13:00", "1:30", "noon", "0:10 PM", "1:75 AM"} {
		if _, err := combinePickupTime(pickupDate, label); err == nil {
			t.Errorf("combinePickupTime(%q) = nil error; want ValidationError", label)
		}
	}
}
