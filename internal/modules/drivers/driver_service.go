package drivers

import (
	"context"
	"fmt"
	"log"

	"propane-delivery/internal/models"

	"github.com/google/uuid"
)

// ZoneChecker verifies a zone exists before a driver is assigned to it.
type ZoneChecker interface {
	FindByID(ctx context.Context, zoneID string) (*models.DeliveryZone, error)
}

// ServiceInterface defines the driver management contract.
type ServiceInterface interface {
	CreateDriver(ctx context.Context, req models.CreateDriverRequest) (*models.Driver, error)
	GetMyProfile(ctx context.Context, userID string) (*models.Driver, error)
	UpdateMyStatus(ctx context.Context, userID, status string) (*models.Driver, error)
	UpdateMyLocation(ctx context.Context, userID string, point models.LatLng) error
	ListDrivers(ctx context.Context) ([]*models.Driver, error)
	AssignZone(ctx context.Context, driverID string, zoneID *string) (*models.Driver, error)
	Suspend(ctx context.Context, driverID string) (*models.Driver, error)
}

// Service implements driver management. Zone assignment is a manual dispatch
// decision made by an administrator; it is never derived from the driver's
// reported location, and no geofencing check ties the two together.
type Service struct {
	repo  RepositoryInterface
	zones ZoneChecker
}

func NewService(repo RepositoryInterface, zones ZoneChecker) *Service {
	return &Service{repo: repo, zones: zones}
}

func (s *Service) CreateDriver(ctx context.Context, req models.CreateDriverRequest) (*models.Driver, error) {
	driver := &models.Driver{
		ID:           uuid.New().String(),
		UserID:       req.UserID,
		Name:         req.Name,
		Phone:        req.Phone,
		VehiclePlate: req.VehiclePlate,
	}

	created, err := s.repo.Create(ctx, driver)
	if err != nil {
		return nil, err
	}
	log.Printf("driver created: id=%s user=%s", created.ID, created.UserID)
	return created, nil
}

func (s *Service) GetMyProfile(ctx context.Context, userID string) (*models.Driver, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateMyStatus lets a driver flip between AVAILABLE, BUSY and OFFLINE.
// Suspended drivers cannot reactivate themselves.
func (s *Service) UpdateMyStatus(ctx context.Context, userID, status string) (*models.Driver, error) {
	driver, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.UpdateMyStatus: %w", err)
	}
	if driver.Status == models.DriverSuspended {
		return nil, models.ErrDriverSuspended
	}

	if err := s.repo.UpdateStatus(ctx, driver.ID, status); err != nil {
		return nil, fmt.Errorf("service.UpdateMyStatus: %w", err)
	}
	driver.Status = status
	return driver, nil
}

func (s *Service) UpdateMyLocation(ctx context.Context, userID string, point models.LatLng) error {
	driver, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service.UpdateMyLocation: %w", err)
	}
	return s.repo.UpdateLocation(ctx, driver.ID, point.Lat, point.Lng)
}

func (s *Service) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	return s.repo.ListAll(ctx)
}

// AssignZone points a driver at a delivery zone (or detaches them with nil).
func (s *Service) AssignZone(ctx context.Context, driverID string, zoneID *string) (*models.Driver, error) {
	if zoneID != nil {
		if _, err := s.zones.FindByID(ctx, *zoneID); err != nil {
			return nil, fmt.Errorf("service.AssignZone: %w", err)
		}
	}

	if err := s.repo.UpdateAssignedZone(ctx, driverID, zoneID); err != nil {
		return nil, fmt.Errorf("service.AssignZone: %w", err)
	}

	driver, err := s.repo.FindByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.AssignZone: %w", err)
	}

	zoneLabel := "none"
	if zoneID != nil {
		zoneLabel = *zoneID
	}
	log.Printf("driver zone assigned: driver=%s zone=%s", driverID, zoneLabel)
	return driver, nil
}

func (s *Service) Suspend(ctx context.Context, driverID string) (*models.Driver, error) {
	if err := s.repo.UpdateStatus(ctx, driverID, models.DriverSuspended); err != nil {
		return nil, fmt.Errorf("service.Suspend: %w", err)
	}
	log.Printf("driver suspended: id=%s", driverID)
	return s.repo.FindByID(ctx, driverID)
}
