package orders

import (
	"context"
	"errors"
	"fmt"

	"propane-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the storage contract for orders.
type RepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
	ListAll(ctx context.Context, page, limit int) ([]*models.Order, int, error)
	ListDriverQueue(ctx context.Context, driverID, zoneID string) ([]*models.Order, error)
	Claim(ctx context.Context, orderID, driverID string) error
	UpdateStatus(ctx context.Context, orderID, status string) error
	UpdateStatusForUser(ctx context.Context, orderID, userID, status string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const orderColumns = `id, user_id, driver_id, zone_id, status, tank_size, quantity,
	unit_price, delivery_fee, total, delivery_address, delivery_lat, delivery_lng,
	notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.DriverID,
		&order.ZoneID,
		&order.Status,
		&order.TankSize,
		&order.Quantity,
		&order.UnitPrice,
		&order.DeliveryFee,
		&order.Total,
		&order.DeliveryAddress,
		&order.DeliveryLat,
		&order.DeliveryLng,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return order, nil
}

func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	query := `
		INSERT INTO orders (id, user_id, zone_id, status, tank_size, quantity,
			unit_price, delivery_fee, total, delivery_address, delivery_lat, delivery_lng, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + orderColumns

	row := r.db.QueryRow(ctx, query,
		order.ID, order.UserID, order.ZoneID, order.Status, order.TankSize, order.Quantity,
		order.UnitPrice, order.DeliveryFee, order.Total,
		order.DeliveryAddress, order.DeliveryLat, order.DeliveryLng, order.Notes,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateOrder: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindOrderByID: %w", err)
	}
	return order, nil
}

func (r *Repository) ListByUserID(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	offset := (page - 1) * limit
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID.Query: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListByUserID.Scan: %w", err)
		}
		orders = append(orders, order)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListByUserID.Count: %w", err)
	}

	return orders, total, nil
}

func (r *Repository) ListAll(ctx context.Context, page, limit int) ([]*models.Order, int, error) {
	offset := (page - 1) * limit
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListAll.Query: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repository.ListAll.Scan: %w", err)
		}
		orders = append(orders, order)
	}

	var total int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository.ListAll.Count: %w", err)
	}

	return orders, total, nil
}

// ListDriverQueue is the SQL side of the dispatch filter: the driver's own
// orders in any status, plus unassigned claimable orders whose zone snapshot
// equals the driver's zone. Own orders sort first, then recency.
func (r *Repository) ListDriverQueue(ctx context.Context, driverID, zoneID string) ([]*models.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE driver_id = $1
		   OR (driver_id IS NULL AND zone_id = $2 AND status IN ('PENDING', 'CONFIRMED'))
		ORDER BY (driver_id = $1) DESC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, query, driverID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("repository.ListDriverQueue.Query: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListDriverQueue.Scan: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListDriverQueue.Rows: %w", err)
	}
	return orders, nil
}

// Claim hands an unassigned order to a driver with a conditional update, so
// two drivers racing for the same order resolve at the database: exactly one
// update matches, the loser sees ErrOrderAlreadyClaimed.
func (r *Repository) Claim(ctx context.Context, orderID, driverID string) error {
	query := `
		UPDATE orders
		SET driver_id = $2, status = 'ASSIGNED', updated_at = NOW()
		WHERE id = $1
		  AND driver_id IS NULL
		  AND status IN ('PENDING', 'CONFIRMED')`

	cmdTag, err := r.db.Exec(ctx, query, orderID, driverID)
	if err != nil {
		return fmt.Errorf("repository.Claim: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrOrderAlreadyClaimed
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, orderID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, orderID)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateStatusForUser updates an order's status only when the order belongs
// to the given user. Used for customer cancellation.
func (r *Repository) UpdateStatusForUser(ctx context.Context, orderID, userID, status string) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`

	cmdTag, err := r.db.Exec(ctx, query, status, orderID, userID)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatusForUser: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
