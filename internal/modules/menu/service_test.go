package menu

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"kitchen-orders/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeRepo backs the menu repository with maps and tracks which order
// lines reference which items.
type fakeRepo struct {
	items      map[string]*models.MenuItem
	references map[string]int // item id -> referencing order lines
	created    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:      make(map[string]*models.MenuItem),
		references: make(map[string]int),
	}
}

func (f *fakeRepo) Create(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	f.created++
	item := &models.MenuItem{
		ID:            fmt.Sprintf("item-%d", f.created),
		Name:          req.Name,
		Price:         req.Price,
		AvailableDate: req.AvailableDate,
		CreatedAt:     time.Now(),
	}
	if req.Description != "" {
		d := req.Description
		item.Description = &d
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRepo) Update(ctx context.Context, itemID string, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	item.Name = req.Name
	item.Price = req.Price
	item.AvailableDate = req.AvailableDate
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) CountOrderLines(ctx context.Context, itemID string) (int, error) {
	return f.references[itemID], nil
}

func (f *fakeRepo) Delete(ctx context.Context, itemID string) error {
	if _, ok := f.items[itemID]; !ok {
		return models.ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateItemRejectsNegativePrice(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop().Sugar())

	_, err := svc.CreateItem(context.Background(), models.CreateMenuItemRequest{
		Name:          "Soup",
		Price:         dec("-1.00"),
		AvailableDate: time.Now(),
	})
	var ve *models.ValidationError
	if !errors.As(err, &ve) || ve.Field != "price" {
		t.Errorf("error = %v; want ValidationError(price)", err)
	}
}

func TestDeleteItemBlockedByReferences(t *testing.T) {
	fr := newFakeRepo()
	svc := NewService(fr, zap.NewNop().Sugar())

	item, err := svc.CreateItem(context.Background(), models.CreateMenuItemRequest{
		Name:          "Chicken Sandwich",
		Price:         dec("8.99"),
		AvailableDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateItem error: %v", err)
	}

	fr.references[item.ID] = 2
	if err := svc.DeleteItem(context.Background(), item.ID); !errors.Is(err, models.ErrConflict) {
		t.Errorf("delete referenced item = %v; want ErrConflict", err)
	}
	if _, ok := fr.items[item.ID]; !ok {
		t.Error("referenced item was deleted despite conflict")
	}

	fr.references[item.ID] = 0
	if err := svc.DeleteItem(context.Background(), item.ID); err != nil {
		t.Errorf("delete unreferenced item = %v; want nil", err)
	}
	if _, ok := fr.items[item.ID]; ok {
		t.Error("unreferenced item still present after delete")
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), zap.NewNop().Sugar())
	if err := svc.DeleteItem(context.Background(), "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeleteItem(missing) = %v; want ErrNotFound", err)
	}
}
