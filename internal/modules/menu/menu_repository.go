package menu

import (
	"context"
	"errors"
	"fmt"

	"kitchen-orders/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the menu repository.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error)
	Update(ctx context.Context, itemID string, req models.UpdateMenuItemRequest) (*models.MenuItem, error)
	FindByID(ctx context.Context, itemID string) (*models.MenuItem, error)
	List(ctx context.Context) ([]models.MenuItem, error)
	CountOrderLines(ctx context.Context, itemID string) (int, error)
	Delete(ctx context.Context, itemID string) error
}

// Repository implements the RepositoryInterface on Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new menu repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	query := `
		INSERT INTO menu_items (name, price, available_date, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, price, available_date, description, created_at`

	row := r.db.QueryRow(ctx, query, req.Name, req.Price, req.AvailableDate, nullable(req.Description))
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateMenuItem: %w", err)
	}
	return item, nil
}

func (r *Repository) Update(ctx context.Context, itemID string, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	query := `
		UPDATE menu_items
		SET name = $1, price = $2, available_date = $3, description = $4
		WHERE id = $5
		RETURNING id, name, price, available_date, description, created_at`

	row := r.db.QueryRow(ctx, query, req.Name, req.Price, req.AvailableDate, nullable(req.Description), itemID)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, fmt.Errorf("repository.UpdateMenuItem: %w", err)
	}
	return item, nil
}

func (r *Repository) FindByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	query := `
		SELECT id, name, price, available_date, description, created_at
		FROM menu_items
		WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRow(ctx, query, itemID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindMenuItemByID: %w", err)
	}
	return item, nil
}

// List returns every menu item ordered by available date.
func (r *Repository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, price, available_date, description, created_at
		FROM menu_items
		ORDER BY available_date ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListMenuItems: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListMenuItems: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListMenuItems: %w", err)
	}
	return items, nil
}

// CountOrderLines reports how many order lines reference the item.
func (r *Repository) CountOrderLines(ctx context.Context, itemID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE menu_item_id = $1`, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository.CountOrderLines: %w", err)
	}
	return count, nil
}

func (r *Repository) Delete(ctx context.Context, itemID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, itemID)
	if err != nil {
		// The service checks references first, but a line inserted between
		// the check and the delete still trips the foreign key.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return models.ErrConflict
		}
		return fmt.Errorf("repository.DeleteMenuItem: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanMenuItem(row pgx.Row) (*models.MenuItem, error) {
	var item models.MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.AvailableDate,
		&item.Description,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}
	return &item, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
