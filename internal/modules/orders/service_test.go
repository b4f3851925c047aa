package orders

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"kitchen-orders/internal/models"

	"go.uber.org/zap"
)

// fakeRepo mimics the order repository over in-memory maps and records
// what was persisted for assertions.
type fakeRepo struct {
	menuItems map[string]models.MenuItem
	orders    map[string]*models.Order
	created   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		menuItems: make(map[string]models.MenuItem),
		orders:    make(map[string]*models.Order),
	}
}

func (f *fakeRepo) Create(ctx context.Context, norm NormalizedOrder) (*models.Order, error) {
	f.created++
	order := &models.Order{
		ID:            fmt.Sprintf("order-%d", f.created),
		CustomerName:  norm.CustomerName,
		PhoneNumber:   norm.PhoneNumber,
		NotifyUpdates: norm.NotifyUpdates,
		PickupAt:      norm.PickupAt,
		Instructions:  norm.Instructions,
		CreatedAt:     time.Now(),
	}
	for i, it := range norm.Items {
		item := f.menuItems[it.MenuItemID]
		order.Items = append(order.Items, models.OrderLine{
			ID:         fmt.Sprintf("line-%d", i+1),
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			MenuItem:   &item,
		})
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeRepo) SetPickedUp(ctx context.Context, orderID string, picked bool) error {
	o, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	o.PickedUp = picked
	return nil
}

func (f *fakeRepo) MenuItemsByID(ctx context.Context, ids []string) (map[string]models.MenuItem, error) {
	out := make(map[string]models.MenuItem)
	for _, id := range ids {
		if item, ok := f.menuItems[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

// fakeWindows resolves one known window.
type fakeWindows struct {
	window models.OrderingWindow
}

func (f *fakeWindows) FindByID(ctx context.Context, id string) (*models.OrderingWindow, error) {
	if id != f.window.ID {
		return nil, models.ErrNotFound
	}
	cp := f.window
	return &cp, nil
}

// fakeNotifier records deliveries and can be made to fail.
type fakeNotifier struct {
	sent []string // recipients
	fail bool
}

func (f *fakeNotifier) Send(ctx context.Context, to, body string) error {
	if f.fail {
		return errors.New("provider unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(fr *fakeRepo, fn *fakeNotifier, adminContact string) *Service {
	fw := &fakeWindows{window: models.OrderingWindow{
		ID:          "w1",
		PickupDate:  time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local),
		PickupTimes: []string{"1:00 PM", "1:30 PM"},
	}}
	svc := NewService(fr, fw, nil, adminContact, dec("0.0825"), zap.NewNop().Sugar())
	if fn != nil {
		svc.notifier = fn
	}
	return svc
}

func TestCreateOrderSuccess(t *testing.T) {
	fr := newFakeRepo()
	fr.menuItems["m1"] = models.MenuItem{ID: "m1", Name: "Chicken Sandwich", Price: dec("8.99")}
	fn := &fakeNotifier{}
	svc := newTestService(fr, fn, "+15550001111")

	req := models.CreateOrderRequest{
		CustomerName:  "Ada",
		PhoneNumber:   "555-555-1234",
		NotifyUpdates: true,
		WindowID:      "w1",
		PickupTime:    "1:30 PM",
		Items: []models.OrderItemInput{
			{MenuItemID: "m1", Quantity: -3},
			{MenuItemID: "m1", Quantity: 2},
		},
	}
	order, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	// The negative line was clamped away; only the positive one persisted.
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Errorf("persisted items = %+v; want one line x2", order.Items)
	}
	if order.PickupAt.Hour() != 13 || order.PickupAt.Minute() != 30 {
		t.Errorf("PickupAt = %v; want 13:30 local", order.PickupAt)
	}
	if order.PickupAt.Day() != 3 {
		t.Errorf("PickupAt day = %d; want 3", order.PickupAt.Day())
	}

	// Both the customer and the admin were notified.
	if len(fn.sent) != 2 {
		t.Fatalf("notifications sent = %d; want 2", len(fn.sent))
	}
	if fn.sent[0] != "555-555-1234" || fn.sent[1] != "+15550001111" {
		t.Errorf("recipients = %v; want customer then admin", fn.sent)
	}
}

func TestCreateOrderNotificationFailureDoesNotRollBack(t *testing.T) {
	fr := newFakeRepo()
	fr.menuItems["m1"] = models.MenuItem{ID: "m1", Name: "Soup", Price: dec("5.00")}
	fn := &fakeNotifier{fail: true}
	svc := newTestService(fr, fn, "+15550001111")

	req := models.CreateOrderRequest{
		CustomerName:  "Ada",
		PhoneNumber:   "555-555-1234",
		NotifyUpdates: true,
		WindowID:      "w1",
		PickupTime:    "1:00 PM",
		Items:         []models.OrderItemInput{{MenuItemID: "m1", Quantity: 1}},
	}
	order, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder with failing notifier: error = %v; want nil", err)
	}
	if _, ok := fr.orders[order.ID]; !ok {
		t.Error("order not persisted after notification failure")
	}
}

func TestCreateOrderValidationFailures(t *testing.T) {
	fr := newFakeRepo()
	fr.menuItems["m1"] = models.MenuItem{ID: "m1", Name: "Soup", Price: dec("5.00")}
	svc := newTestService(fr, nil, "")

	base := models.CreateOrderRequest{
		CustomerName: "Ada",
		WindowID:     "w1",
		PickupTime:   "1:00 PM",
		Items:        []models.OrderItemInput{{MenuItemID: "m1", Quantity: 1}},
	}

	req := base
	req.CustomerName = ""
	wantFieldError(t, mustFail(t, svc, req), "customerName")

	req = base
	req.NotifyUpdates = true
	wantFieldError(t, mustFail(t, svc, req), "phoneNumber")

	req = base
	req.Items = []models.OrderItemInput{{MenuItemID: "m1", Quantity: -2}}
	if err := mustFail(t, svc, req); !errors.Is(err, models.ErrEmptyOrder) {
		t.Errorf("error = %v; want ErrEmptyOrder", err)
	}

	req = base
	req.WindowID = "unknown"
	if err := mustFail(t, svc, req); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown window error = %v; want ErrNotFound", err)
	}

	req = base
	req.Items = []models.OrderItemInput{{MenuItemID: "ghost", Quantity: 1}}
	if err := mustFail(t, svc, req); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown menu item error = %v; want ErrNotFound", err)
	}

	if fr.created != 0 {
		t.Errorf("orders persisted during failed validations = %d; want 0", fr.created)
	}
}

func mustFail(t *testing.T, svc *Service, req models.CreateOrderRequest) error {
	t.Helper()
	_, err := svc.CreateOrder(context.Background(), req)
	if err == nil {
		t.Fatal("CreateOrder error = nil; want error")
	}
	return err
}

func TestGetConfirmationRecomputesTotals(t *testing.T) {
	fr := newFakeRepo()
	fr.menuItems["m1"] = models.MenuItem{ID: "m1", Name: "Sandwich", Price: dec("10.00")}
	svc := newTestService(fr, nil, "")

	req := models.CreateOrderRequest{
		CustomerName: "Ada",
		WindowID:     "w1",
		PickupTime:   "1:00 PM",
		Items:        []models.OrderItemInput{{MenuItemID: "m1", Quantity: 2}},
	}
	order, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	conf, err := svc.GetConfirmation(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetConfirmation error: %v", err)
	}
	if !conf.Totals.Subtotal.Equal(dec("20.00")) {
		t.Errorf("Subtotal = %v; want 20.00", conf.Totals.Subtotal)
	}
	if !conf.Totals.Tax.Equal(dec("1.65")) {
		t.Errorf("Tax = %v; want 1.65", conf.Totals.Tax)
	}
	if !conf.Totals.Total.Equal(dec("21.65")) {
		t.Errorf("Total = %v; want 21.65", conf.Totals.Total)
	}
}

func TestMarkPicked(t *testing.T) {
	fr := newFakeRepo()
	fr.menuItems["m1"] = models.MenuItem{ID: "m1", Name: "Soup", Price: dec("5.00")}
	svc := newTestService(fr, nil, "")

	order, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		CustomerName: "Ada",
		WindowID:     "w1",
		PickupTime:   "1:00 PM",
		Items:        []models.OrderItemInput{{MenuItemID: "m1", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("CreateOrder error: %v", err)
	}

	if err := svc.MarkPicked(context.Background(), order.ID, true); err != nil {
		t.Fatalf("MarkPicked error: %v", err)
	}
	if !fr.orders[order.ID].PickedUp {
		t.Error("PickedUp = false after MarkPicked(true)")
	}

	if err := svc.MarkPicked(context.Background(), "missing", true); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("MarkPicked(missing) = %v; want ErrNotFound", err)
	}
}
