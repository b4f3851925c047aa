package orders

import (
	"context"
	"errors"
	"fmt"

	"kitchen-orders/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the order repository.
type RepositoryInterface interface {
	Create(ctx context.Context, order NormalizedOrder) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	SetPickedUp(ctx context.Context, orderID string, picked bool) error
	MenuItemsByID(ctx context.Context, itemIDs []string) (map[string]models.MenuItem, error)
}

// Repository implements the RepositoryInterface on Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create inserts the order and its lines in one transaction and returns the
// stored order with lines and menu-item details loaded.
func (r *Repository) Create(ctx context.Context, order NormalizedOrder) (*models.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (customer_name, phone_number, notify_updates, pickup_at, instructions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var orderID string
	err = tx.QueryRow(ctx, query,
		order.CustomerName, order.PhoneNumber, order.NotifyUpdates, order.PickupAt, order.Instructions,
	).Scan(&orderID)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: insert order: %w", err)
	}

	for _, line := range order.Items {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, quantity) VALUES ($1, $2, $3)`,
			orderID, line.MenuItemID, line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("repository.CreateOrder: insert line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: commit: %w", err)
	}

	return r.FindByID(ctx, orderID)
}

// FindByID retrieves a single order with its lines and menu-item details.
func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `
		SELECT id, customer_name, phone_number, notify_updates, pickup_at, instructions, picked_up, created_at
		FROM orders
		WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindOrderByID: %w", err)
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("repository.FindOrderByID: %w", err)
	}
	order.Items = lines
	return order, nil
}

// ListAll retrieves every order sorted by pickup time ascending, the way
// the admin dashboard displays them.
func (r *Repository) ListAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, customer_name, phone_number, notify_updates, pickup_at, instructions, picked_up, created_at
		FROM orders
		ORDER BY pickup_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAllOrders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListAllOrders: %w", err)
		}
		out = append(out, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListAllOrders: %w", err)
	}

	for i := range out {
		lines, err := r.loadLines(ctx, out[i].ID)
		if err != nil {
			return nil, fmt.Errorf("repository.ListAllOrders: %w", err)
		}
		out[i].Items = lines
	}
	return out, nil
}

// SetPickedUp updates the picked-up flag on an order.
func (r *Repository) SetPickedUp(ctx context.Context, orderID string, picked bool) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE orders SET picked_up = $1 WHERE id = $2`, picked, orderID)
	if err != nil {
		return fmt.Errorf("repository.SetPickedUp: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MenuItemsByID loads the referenced menu items keyed by id. A requested id
// missing from the result means the item does not exist.
func (r *Repository) MenuItemsByID(ctx context.Context, itemIDs []string) (map[string]models.MenuItem, error) {
	query := `
		SELECT id, name, price, available_date, description, created_at
		FROM menu_items
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("repository.MenuItemsByID: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.MenuItem, len(itemIDs))
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.AvailableDate, &item.Description, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository.MenuItemsByID: %w", err)
		}
		out[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.MenuItemsByID: %w", err)
	}
	return out, nil
}

func (r *Repository) loadLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	query := `
		SELECT oi.id, oi.menu_item_id, oi.quantity,
		       mi.id, mi.name, mi.price, mi.available_date, mi.description, mi.created_at
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		var item models.MenuItem
		err := rows.Scan(
			&line.ID, &line.MenuItemID, &line.Quantity,
			&item.ID, &item.Name, &item.Price, &item.AvailableDate, &item.Description, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.MenuItem = &item
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.PhoneNumber,
		&order.NotifyUpdates,
		&order.PickupAt,
		&order.Instructions,
		&order.PickedUp,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return &order, nil
}
