package orders

import (
	"context"
	"fmt"
	"strings"

	"kitchen-orders/internal/models"
	"kitchen-orders/pkg/notification"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WindowFinder is the slice of the windows module the order service needs:
// resolving the submitted window to its pickup date.
type WindowFinder interface {
	FindByID(ctx context.Context, windowID string) (*models.OrderingWindow, error)
}

// ServiceInterface defines the contract for the order service.
type ServiceInterface interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
	GetConfirmation(ctx context.Context, orderID string) (*Confirmation, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	MarkPicked(ctx context.Context, orderID string, picked bool) error
}

// Confirmation is an order together with its server-side recomputed totals,
// shown on the confirmation page.
type Confirmation struct {
	Order  *models.Order `json:"order"`
	Totals Totals        `json:"totals"`
}

// Service implements the order service logic.
type Service struct {
	repo         RepositoryInterface
	windows      WindowFinder
	notifier     notification.Notifier // nil when notification is not configured
	adminContact string
	taxRate      decimal.Decimal
	logger       *zap.SugaredLogger
}

// NewService creates a new order service. notifier may be nil; adminContact
// is the phone number or email address that receives new-order notices.
func NewService(repo RepositoryInterface, windows WindowFinder, notifier notification.Notifier, adminContact string, taxRate decimal.Decimal, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:         repo,
		windows:      windows,
		notifier:     notifier,
		adminContact: adminContact,
		taxRate:      taxRate,
		logger:       logger,
	}
}

// CreateOrder takes a raw submission through validation, persistence and
// best-effort notification. A notification failure never rolls the order
// back; the order is committed before any notice is attempted.
func (s *Service) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	items := clampItems(req.Items)
	if len(items) == 0 {
		return nil, models.ErrEmptyOrder
	}

	window, err := s.windows.FindByID(ctx, req.WindowID)
	if err != nil {
		return nil, err
	}
	pickupAt, err := combinePickupTime(window.PickupDate, req.PickupTime)
	if err != nil {
		return nil, err
	}

	// Every referenced menu item must exist before the insert.
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.MenuItemID)
	}
	known, err := s.repo.MenuItemsByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}
	for _, it := range items {
		if _, ok := known[it.MenuItemID]; !ok {
			return nil, models.ErrNotFound
		}
	}

	norm := NormalizedOrder{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		PhoneNumber:   optional(req.PhoneNumber),
		NotifyUpdates: req.NotifyUpdates,
		PickupAt:      pickupAt,
		Instructions:  optional(req.Instructions),
		Items:         items,
	}

	order, err := s.repo.Create(ctx, norm)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	s.notify(ctx, order)
	return order, nil
}

// GetConfirmation returns the order with totals recomputed from the stored
// lines and current menu prices.
func (s *Service) GetConfirmation(ctx context.Context, orderID string) (*Confirmation, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines := make([]PricedLine, 0, len(order.Items))
	for _, l := range order.Items {
		if l.MenuItem == nil {
			continue
		}
		lines = append(lines, PricedLine{UnitPrice: l.MenuItem.Price, Quantity: l.Quantity})
	}
	return &Confirmation{Order: order, Totals: Price(lines, s.taxRate)}, nil
}

// ListAllOrders lists every order for the admin dashboard.
func (s *Service) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAll(ctx)
}

// MarkPicked sets the picked-up flag, the only mutation an order allows.
func (s *Service) MarkPicked(ctx context.Context, orderID string, picked bool) error {
	return s.repo.SetPickedUp(ctx, orderID, picked)
}

// notify sends the customer and admin notices. Each recipient is attempted
// independently and failures are only logged.
func (s *Service) notify(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}

	if order.NotifyUpdates && order.PhoneNumber != nil {
		body := fmt.Sprintf("Thanks, %s! Your order has been placed.", order.CustomerName)
		outcome := s.deliver(ctx, *order.PhoneNumber, body)
		s.logger.Infow("customer notification",
			"order_id", order.ID, "outcome", outcome.String())
	}

	if s.adminContact != "" {
		body := fmt.Sprintf("New order placed by %s for: %s", order.CustomerName, describeItems(order.Items))
		outcome := s.deliver(ctx, s.adminContact, body)
		s.logger.Infow("admin notification",
			"order_id", order.ID, "outcome", outcome.String())
	}
}

func (s *Service) deliver(ctx context.Context, to, body string) notification.Outcome {
	if err := s.notifier.Send(ctx, to, body); err != nil {
		s.logger.Warnw("notification delivery failed", "error", err)
		return notification.OutcomeFailed
	}
	return notification.OutcomeSent
}

// describeItems renders order lines as "Name (x2), Other (x1)".
func describeItems(lines []models.OrderLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		name := l.MenuItemID
		if l.MenuItem != nil {
			name = l.MenuItem.Name
		}
		parts = append(parts, fmt.Sprintf("%s (x%d)", name, l.Quantity))
	}
	return strings.Join(parts, ", ")
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
