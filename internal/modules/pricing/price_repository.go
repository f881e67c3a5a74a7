package pricing

import (
	"context"
	"errors"
	"fmt"

	"propane-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the storage contract for tank prices.
type RepositoryInterface interface {
	Create(ctx context.Context, price *models.TankPrice) (*models.TankPrice, error)
	FindActiveBySize(ctx context.Context, size string) (*models.TankPrice, error)
	ListAll(ctx context.Context) ([]*models.TankPrice, error)
	Update(ctx context.Context, priceID string, req models.UpdatePriceRequest) (*models.TankPrice, error)
	Delete(ctx context.Context, priceID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const priceColumns = "id, size, price, is_active, created_at, updated_at"

func scanPrice(row pgx.Row) (*models.TankPrice, error) {
	p := &models.TankPrice{}
	err := row.Scan(&p.ID, &p.Size, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan price: %w", err)
	}
	return p, nil
}

func (r *Repository) Create(ctx context.Context, price *models.TankPrice) (*models.TankPrice, error) {
	query := `
		INSERT INTO tank_prices (id, size, price, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + priceColumns

	created, err := scanPrice(r.db.QueryRow(ctx, query, price.ID, price.Size, price.Price))
	if err != nil {
		return nil, fmt.Errorf("repository.CreatePrice: %w", err)
	}
	return created, nil
}

func (r *Repository) FindActiveBySize(ctx context.Context, size string) (*models.TankPrice, error) {
	query := `SELECT ` + priceColumns + ` FROM tank_prices WHERE size = $1 AND is_active = TRUE`
	price, err := scanPrice(r.db.QueryRow(ctx, query, size))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindActiveBySize: %w", err)
	}
	return price, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*models.TankPrice, error) {
	rows, err := r.db.Query(ctx, `SELECT `+priceColumns+` FROM tank_prices ORDER BY price`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListPrices.Query: %w", err)
	}
	defer rows.Close()

	var prices []*models.TankPrice
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListPrices.Scan: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListPrices.Rows: %w", err)
	}
	return prices, nil
}

func (r *Repository) Update(ctx context.Context, priceID string, req models.UpdatePriceRequest) (*models.TankPrice, error) {
	query := `
		UPDATE tank_prices
		SET price = COALESCE($1, price), is_active = COALESCE($2, is_active), updated_at = NOW()
		WHERE id = $3
		RETURNING ` + priceColumns

	price, err := scanPrice(r.db.QueryRow(ctx, query, req.Price, req.IsActive, priceID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdatePrice: %w", err)
	}
	return price, nil
}

func (r *Repository) Delete(ctx context.Context, priceID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tank_prices WHERE id = $1`, priceID)
	if err != nil {
		return fmt.Errorf("repository.DeletePrice: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
