package windows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kitchen-orders/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the ordering-window repository.
type RepositoryInterface interface {
	Create(ctx context.Context, req models.CreateOrderingWindowRequest) (*models.OrderingWindow, error)
	FindByID(ctx context.Context, windowID string) (*models.OrderingWindow, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]models.OrderingWindow, error)
	ListAll(ctx context.Context) ([]models.OrderingWindow, error)
	Delete(ctx context.Context, windowID string) error
}

// Repository implements the RepositoryInterface on Postgres.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new ordering-window repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req models.CreateOrderingWindowRequest) (*models.OrderingWindow, error) {
	query := `
		INSERT INTO ordering_windows (ordering_start, ordering_end, pickup_date, pickup_times)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ordering_start, ordering_end, pickup_date, pickup_times, created_at`

	row := r.db.QueryRow(ctx, query, req.OrderingStart, req.OrderingEnd, req.PickupDate, req.PickupTimes)
	w, err := scanWindow(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateWindow: %w", err)
	}
	return w, nil
}

func (r *Repository) FindByID(ctx context.Context, windowID string) (*models.OrderingWindow, error) {
	query := `
		SELECT id, ordering_start, ordering_end, pickup_date, pickup_times, created_at
		FROM ordering_windows
		WHERE id = $1`

	w, err := scanWindow(r.db.QueryRow(ctx, query, windowID))
	if err != nil {
		return nil, fmt.Errorf("repository.FindWindowByID: %w", err)
	}
	return w, nil
}

// ListUpcoming returns windows whose ordering end has not passed, ordered
// by start ascending.
func (r *Repository) ListUpcoming(ctx context.Context, now time.Time) ([]models.OrderingWindow, error) {
	query := `
		SELECT id, ordering_start, ordering_end, pickup_date, pickup_times, created_at
		FROM ordering_windows
		WHERE ordering_end >= $1
		ORDER BY ordering_start ASC`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("repository.ListUpcoming: %w", err)
	}
	defer rows.Close()
	return collectWindows(rows)
}

func (r *Repository) ListAll(ctx context.Context) ([]models.OrderingWindow, error) {
	query := `
		SELECT id, ordering_start, ordering_end, pickup_date, pickup_times, created_at
		FROM ordering_windows
		ORDER BY ordering_start ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListAllWindows: %w", err)
	}
	defer rows.Close()
	return collectWindows(rows)
}

func (r *Repository) Delete(ctx context.Context, windowID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM ordering_windows WHERE id = $1`, windowID)
	if err != nil {
		return fmt.Errorf("repository.DeleteWindow: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanWindow(row pgx.Row) (*models.OrderingWindow, error) {
	var w models.OrderingWindow
	err := row.Scan(
		&w.ID,
		&w.OrderingStart,
		&w.OrderingEnd,
		&w.PickupDate,
		&w.PickupTimes,
		&w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan ordering window: %w", err)
	}
	return &w, nil
}

func collectWindows(rows pgx.Rows) ([]models.OrderingWindow, error) {
	var out []models.OrderingWindow
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ordering windows: %w", err)
	}
	return out, nil
}
