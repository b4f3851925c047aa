package windows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kitchen-orders/internal/models"

	"go.uber.org/zap"
)

// ServiceInterface defines the contract for the ordering-window service.
type ServiceInterface interface {
	CreateWindow(ctx context.Context, req models.CreateOrderingWindowRequest) (*models.OrderingWindow, error)
	ListWindows(ctx context.Context, includePast bool) ([]models.OrderingWindow, error)
	DeleteWindow(ctx context.Context, windowID string) error
	Status() models.WindowStatus
}

// Service implements the ordering-window service logic.
type Service struct {
	repo    RepositoryInterface
	watcher *Watcher
	logger  *zap.SugaredLogger
}

// NewService creates a new ordering-window service.
func NewService(repo RepositoryInterface, watcher *Watcher, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, watcher: watcher, logger: logger}
}

// CreateWindow validates and persists a new ordering window, then refreshes
// the watcher so the countdown picks it up immediately.
func (s *Service) CreateWindow(ctx context.Context, req models.CreateOrderingWindowRequest) (*models.OrderingWindow, error) {
	if !req.OrderingEnd.After(req.OrderingStart) {
		return nil, &models.ValidationError{Field: "orderingEnd"}
	}
	if err := checkPickupTimes(req.PickupTimes); err != nil {
		return nil, err
	}

	w, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.CreateWindow: %w", err)
	}

	if err := s.watcher.Refresh(ctx); err != nil {
		s.logger.Warnw("watcher refresh after window create failed", "error", err)
	}
	return w, nil
}

// ListWindows returns upcoming windows, or every window when includePast is
// set (admin listing).
func (s *Service) ListWindows(ctx context.Context, includePast bool) ([]models.OrderingWindow, error) {
	if includePast {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListUpcoming(ctx, time.Now())
}

func (s *Service) DeleteWindow(ctx context.Context, windowID string) error {
	if err := s.repo.Delete(ctx, windowID); err != nil {
		return err
	}
	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.watcher.Refresh(ctx2); err != nil {
		s.logger.Warnw("watcher refresh after window delete failed", "error", err)
	}
	return nil
}

// Status returns the watcher's latest evaluation.
func (s *Service) Status() models.WindowStatus {
	return s.watcher.Current()
}

// checkPickupTimes enforces that pickup time labels are non-empty and unique.
func checkPickupTimes(times []string) error {
	seen := make(map[string]struct{}, len(times))
	for _, t := range times {
		label := strings.TrimSpace(t)
		if label == "" {
			return &models.ValidationError{Field: "pickupTimes"}
		}
		if _, dup := seen[label]; dup {
			return &models.ValidationError{Field: "pickupTimes"}
		}
		seen[label] = struct{}{}
	}
	return nil
}
