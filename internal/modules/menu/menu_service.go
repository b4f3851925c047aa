package menu

import (
	"context"
	"fmt"

	"kitchen-orders/internal/models"

	"go.uber.org/zap"
)

// ServiceInterface defines the contract for the menu service.
type ServiceInterface interface {
	CreateItem(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, itemID string, req models.UpdateMenuItemRequest) (*models.MenuItem, error)
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// Service implements the menu service logic.
type Service struct {
	repo   RepositoryInterface
	logger *zap.SugaredLogger
}

// NewService creates a new menu service.
func NewService(repo RepositoryInterface, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateItem(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if req.Price.IsNegative() {
		return nil, &models.ValidationError{Field: "price"}
	}
	item, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("service.CreateItem: %w", err)
	}
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, itemID string, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if req.Price.IsNegative() {
		return nil, &models.ValidationError{Field: "price"}
	}
	item, err := s.repo.Update(ctx, itemID, req)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.List(ctx)
}

// DeleteItem refuses to delete an item that existing order lines still
// reference, so orders never point at a missing item. The check and the
// delete are two statements; the repository maps a foreign-key violation in
// between to the same conflict.
func (s *Service) DeleteItem(ctx context.Context, itemID string) error {
	count, err := s.repo.CountOrderLines(ctx, itemID)
	if err != nil {
		return fmt.Errorf("service.DeleteItem: %w", err)
	}
	if count > 0 {
		return models.ErrConflict
	}
	return s.repo.Delete(ctx, itemID)
}
