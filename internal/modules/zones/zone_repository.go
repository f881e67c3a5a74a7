package zones

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"propane-delivery/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the storage contract for delivery zones.
// Vertices are stored as JSONB; pgx marshals []models.LatLng transparently.
type RepositoryInterface interface {
	Create(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error)
	FindByID(ctx context.Context, zoneID string) (*models.DeliveryZone, error)
	ListAll(ctx context.Context) ([]*models.DeliveryZone, error)
	ListActive(ctx context.Context) ([]*models.DeliveryZone, error)
	Update(ctx context.Context, zoneID string, req models.UpdateZoneRequest) (*models.DeliveryZone, error)
	Delete(ctx context.Context, zoneID string) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const zoneColumns = "id, name, color, vertices, delivery_fee, description, is_active, created_at, updated_at"

func scanZone(row pgx.Row) (*models.DeliveryZone, error) {
	zone := &models.DeliveryZone{}
	err := row.Scan(
		&zone.ID,
		&zone.Name,
		&zone.Color,
		&zone.Vertices,
		&zone.DeliveryFee,
		&zone.Description,
		&zone.IsActive,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan zone: %w", err)
	}
	return zone, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *Repository) Create(ctx context.Context, zone *models.DeliveryZone) (*models.DeliveryZone, error) {
	query := `
		INSERT INTO delivery_zones (id, name, color, vertices, delivery_fee, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + zoneColumns

	row := r.db.QueryRow(ctx, query,
		zone.ID, zone.Name, zone.Color, zone.Vertices, zone.DeliveryFee, zone.Description,
	)
	created, err := scanZone(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.ErrZoneNameTaken
		}
		return nil, fmt.Errorf("repository.CreateZone: %w", err)
	}
	return created, nil
}

func (r *Repository) FindByID(ctx context.Context, zoneID string) (*models.DeliveryZone, error) {
	query := `SELECT ` + zoneColumns + ` FROM delivery_zones WHERE id = $1`
	zone, err := scanZone(r.db.QueryRow(ctx, query, zoneID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindZoneByID: %w", err)
	}
	return zone, nil
}

func (r *Repository) list(ctx context.Context, query string) ([]*models.DeliveryZone, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListZones.Query: %w", err)
	}
	defer rows.Close()

	var zones []*models.DeliveryZone
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListZones.Scan: %w", err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListZones.Rows: %w", err)
	}
	return zones, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]*models.DeliveryZone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM delivery_zones ORDER BY created_at`)
}

// ListActive returns active zones in creation order. The resolver scans this
// list front to back, so creation order decides which of two overlapping
// zones wins; keeping the ORDER BY stable keeps that decision deterministic.
func (r *Repository) ListActive(ctx context.Context) ([]*models.DeliveryZone, error) {
	return r.list(ctx, `SELECT `+zoneColumns+` FROM delivery_zones WHERE is_active = TRUE ORDER BY created_at`)
}

func (r *Repository) Update(ctx context.Context, zoneID string, req models.UpdateZoneRequest) (*models.DeliveryZone, error) {
	var setClauses []string
	var args []interface{}
	argIdx := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Color != nil {
		setClauses = append(setClauses, fmt.Sprintf("color = $%d", argIdx))
		args = append(args, *req.Color)
		argIdx++
	}
	if req.Vertices != nil {
		setClauses = append(setClauses, fmt.Sprintf("vertices = $%d", argIdx))
		args = append(args, *req.Vertices)
		argIdx++
	}
	if req.DeliveryFee != nil {
		setClauses = append(setClauses, fmt.Sprintf("delivery_fee = $%d", argIdx))
		args = append(args, *req.DeliveryFee)
		argIdx++
	}
	if req.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", argIdx))
		args = append(args, *req.Description)
		argIdx++
	}
	if req.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, zoneID)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, zoneID)

	query := fmt.Sprintf(`UPDATE delivery_zones SET %s WHERE id = $%d RETURNING `+zoneColumns,
		strings.Join(setClauses, ", "), argIdx)

	zone, err := scanZone(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, models.ErrZoneNameTaken
		}
		return nil, fmt.Errorf("repository.UpdateZone: %w", err)
	}
	return zone, nil
}

// Delete removes a zone outright. Orders and users keep their zone_id
// snapshots; callers must tolerate dangling references.
func (r *Repository) Delete(ctx context.Context, zoneID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM delivery_zones WHERE id = $1`, zoneID)
	if err != nil {
		return fmt.Errorf("repository.DeleteZone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
