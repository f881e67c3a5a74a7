package drivers

import (
	"context"
	"errors"
	"fmt"

	"propane-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the storage contract for driver profiles.
type RepositoryInterface interface {
	Create(ctx context.Context, driver *models.Driver) (*models.Driver, error)
	FindByID(ctx context.Context, driverID string) (*models.Driver, error)
	FindByUserID(ctx context.Context, userID string) (*models.Driver, error)
	ListAll(ctx context.Context) ([]*models.Driver, error)
	UpdateStatus(ctx context.Context, driverID, status string) error
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error
	UpdateAssignedZone(ctx context.Context, driverID string, zoneID *string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const driverColumns = `id, user_id, name, phone, vehicle_plate, assigned_zone_id,
	lat, lng, status, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	driver := &models.Driver{}
	err := row.Scan(
		&driver.ID,
		&driver.UserID,
		&driver.Name,
		&driver.Phone,
		&driver.VehiclePlate,
		&driver.AssignedZoneID,
		&driver.Lat,
		&driver.Lng,
		&driver.Status,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan driver: %w", err)
	}
	return driver, nil
}

func (r *Repository) Create(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (id, user_id, name, phone, vehicle_plate, status)
		VALUES ($1, $2, $3, $4, $5, 'OFFLINE')
		RETURNING ` + driverColumns

	row := r.db.QueryRow(ctx, query,
		driver.ID, driver.UserID, driver.Name, driver.Phone, driver.VehiclePlate,
	)
	created, err := scanDriver(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDriverProfileExists
		}
		return nil, fmt.Errorf("repository.CreateDriver: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, driverID string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	driver, err := scanDriver(r.db.QueryRow(ctx, query, driverID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDriverByID: %w", err)
	}
	return driver, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`
	driver, err := scanDriver(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDriverByUserID: %w", err)
	}
	return driver, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListDrivers.Query: %w", err)
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListDrivers.Scan: %w", err)
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListDrivers.Rows: %w", err)
	}
	return drivers, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, driverID, status string) error {
	query := `UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, driverID)
	if err != nil {
		return fmt.Errorf("repository.UpdateDriverStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	query := `UPDATE drivers SET lat = $1, lng = $2, updated_at = NOW() WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, lat, lng, driverID)
	if err != nil {
		return fmt.Errorf("repository.UpdateDriverLocation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdateAssignedZone points a driver at a zone, or detaches them when zoneID
// is nil.
func (r *Repository) UpdateAssignedZone(ctx context.Context, driverID string, zoneID *string) error {
	query := `UPDATE drivers SET assigned_zone_id = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, zoneID, driverID)
	if err != nil {
		return fmt.Errorf("repository.UpdateAssignedZone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
