package orders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"propane-delivery/internal/models"

	"github.com/google/uuid"
)

// CustomerDirectory is the slice of the users module the order service needs:
// the ordering customer's profile, for the zone snapshot and the email address.
type CustomerDirectory interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}

// DriverDirectory is the slice of the drivers module used by dispatch.
type DriverDirectory interface {
	FindByID(ctx context.Context, driverID string) (*models.Driver, error)
	FindByUserID(ctx context.Context, userID string) (*models.Driver, error)
}

// PriceBook resolves a tank size to its active price.
type PriceBook interface {
	FindActiveBySize(ctx context.Context, size string) (*models.TankPrice, error)
}

// ZoneDirectory looks up a delivery zone for fee stamping.
type ZoneDirectory interface {
	FindByID(ctx context.Context, zoneID string) (*models.DeliveryZone, error)
}

// Notifier sends order lifecycle emails. Implementations must not block the
// request path; failures are logged, never surfaced to the customer.
type Notifier interface {
	OrderReceived(to string, order *models.Order)
	OrderAssigned(to string, order *models.Order)
}

// ServiceInterface defines the order lifecycle contract.
type ServiceInterface interface {
	CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error)
	GetOrderDetails(ctx context.Context, orderID, userID, role string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
	ListAllOrders(ctx context.Context, page, limit int) ([]*models.Order, int, error)
	CancelOrder(ctx context.Context, orderID, userID string) error

	DriverQueue(ctx context.Context, driverUserID string) (*models.DriverQueue, error)
	ClaimOrder(ctx context.Context, driverUserID, orderID string) (*models.Order, error)
	DriverUpdateStatus(ctx context.Context, driverUserID, orderID, status string) (*models.Order, error)

	AdminAssignOrder(ctx context.Context, orderID, driverID string) (*models.Order, error)
	AdminUpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error)
}

// Service implements the order lifecycle and zone-based dispatch.
type Service struct {
	repo      RepositoryInterface
	customers CustomerDirectory
	drivers   DriverDirectory
	prices    PriceBook
	zones     ZoneDirectory
	notifier  Notifier
}

func NewService(
	repo RepositoryInterface,
	customers CustomerDirectory,
	drivers DriverDirectory,
	prices PriceBook,
	zones ZoneDirectory,
	notifier Notifier,
) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		drivers:   drivers,
		prices:    prices,
		zones:     zones,
		notifier:  notifier,
	}
}

// CreateOrder creates a propane order for the customer. The order's zone id
// is stamped from the customer's profile zone at this instant; the snapshot
// never changes afterwards, even if the customer later moves their pin. A
// customer with no zone (never geofenced, or outside every zone) gets a
// null-zone order that only moves through manual admin assignment.
func (s *Service) CreateOrder(ctx context.Context, userID string, req models.CreateOrderRequest) (*models.Order, error) {
	user, err := s.customers.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	price, err := s.prices.FindActiveBySize(ctx, req.TankSize)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnknownTankSize
		}
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	// Zone snapshot plus fee. A dangling zone reference (zone deleted since
	// the customer was classified) keeps the snapshot but charges no fee.
	var fee float64
	if user.ZoneID != nil {
		zone, err := s.zones.FindByID(ctx, *user.ZoneID)
		switch {
		case err == nil:
			fee = zone.Fee()
		case errors.Is(err, models.ErrNotFound):
			log.Printf("order create: user=%s references missing zone=%s, charging no fee", userID, *user.ZoneID)
		default:
			return nil, fmt.Errorf("service.CreateOrder: %w", err)
		}
	}

	address := req.DeliveryAddress
	if address == "" {
		address = user.Address
	}
	var lat, lng float64
	if req.DeliveryLocation != nil {
		lat, lng = req.DeliveryLocation.Lat, req.DeliveryLocation.Lng
	} else if user.PinLat != nil && user.PinLng != nil {
		lat, lng = *user.PinLat, *user.PinLng
	}

	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		ZoneID:          user.ZoneID,
		Status:          models.OrderPending,
		TankSize:        price.Size,
		Quantity:        req.Quantity,
		UnitPrice:       price.Price,
		DeliveryFee:     fee,
		Total:           price.Price*float64(req.Quantity) + fee,
		DeliveryAddress: address,
		DeliveryLat:     lat,
		DeliveryLng:     lng,
		Notes:           req.Notes,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("service.CreateOrder: %w", err)
	}

	zoneLabel := "none"
	if created.ZoneID != nil {
		zoneLabel = *created.ZoneID
	}
	log.Printf("order created: id=%s user=%s zone=%s total=%.2f", created.ID, userID, zoneLabel, created.Total)

	s.notifier.OrderReceived(user.Email, created)

	return created, nil
}

func (s *Service) GetOrderDetails(ctx context.Context, orderID, userID, role string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.GetOrderDetails: %w", err)
	}

	// Customers only see their own orders; NotFound avoids leaking existence.
	if role != models.RoleAdmin && order.UserID != userID {
		return nil, models.ErrNotFound
	}

	return order, nil
}

func (s *Service) ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	orders, total, err := s.repo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ListUserOrders: %w", err)
	}
	return orders, total, nil
}

func (s *Service) ListAllOrders(ctx context.Context, page, limit int) ([]*models.Order, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.repo.ListAll(ctx, page, limit)
}

// CancelOrder cancels a customer's own order. Rejected once the delivery is
// in transit or complete; that rejection is reported, not swallowed.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) error {
	order, err := s.GetOrderDetails(ctx, orderID, userID, models.RoleCustomer)
	if err != nil {
		return err
	}

	if !Cancellable(order.Status) {
		return models.ErrOrderCannotBeCancelled
	}

	if err := s.repo.UpdateStatusForUser(ctx, orderID, userID, models.OrderCancelled); err != nil {
		return fmt.Errorf("service.CancelOrder: %w", err)
	}
	log.Printf("order cancelled: id=%s user=%s was=%s", orderID, userID, order.Status)
	return nil
}

// DriverQueue returns the zone-scoped work list for the driver behind the
// given user account. A driver with no assigned zone gets an empty queue with
// an explanatory message; that is a valid state, not an error.
func (s *Service) DriverQueue(ctx context.Context, driverUserID string) (*models.DriverQueue, error) {
	driver, err := s.drivers.FindByUserID(ctx, driverUserID)
	if err != nil {
		return nil, fmt.Errorf("service.DriverQueue: %w", err)
	}

	if driver.Status == models.DriverSuspended {
		return &models.DriverQueue{Orders: []*models.Order{}, Message: "Your account is suspended; contact dispatch"}, nil
	}
	if driver.AssignedZoneID == nil {
		log.Printf("dispatch filter: driver=%s has no assigned zone, empty queue", driver.ID)
		return &models.DriverQueue{Orders: []*models.Order{}, Message: "No delivery zone assigned yet; contact dispatch to get a zone"}, nil
	}

	queue, err := s.repo.ListDriverQueue(ctx, driver.ID, *driver.AssignedZoneID)
	if err != nil {
		return nil, fmt.Errorf("service.DriverQueue: %w", err)
	}
	if queue == nil {
		queue = []*models.Order{}
	}

	log.Printf("dispatch filter: driver=%s zone=%s orders=%d", driver.ID, *driver.AssignedZoneID, len(queue))
	return &models.DriverQueue{Orders: queue}, nil
}

// ClaimOrder lets a driver take an unassigned order from their zone queue.
// The repository claim is conditional, so of two drivers racing for the same
// order exactly one wins.
func (s *Service) ClaimOrder(ctx context.Context, driverUserID, orderID string) (*models.Order, error) {
	driver, err := s.drivers.FindByUserID(ctx, driverUserID)
	if err != nil {
		return nil, fmt.Errorf("service.ClaimOrder: %w", err)
	}
	if driver.Status == models.DriverSuspended {
		return nil, models.ErrDriverSuspended
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.ClaimOrder: %w", err)
	}
	if order.DriverID != nil || !EligibleForDriver(order, driver) {
		return nil, models.ErrOrderNotEligible
	}

	if err := s.repo.Claim(ctx, orderID, driver.ID); err != nil {
		return nil, err
	}
	log.Printf("order claimed: id=%s driver=%s zone=%s", orderID, driver.ID, *driver.AssignedZoneID)

	order, err = s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.ClaimOrder: %w", err)
	}

	if customer, err := s.customers.FindByID(ctx, order.UserID); err == nil {
		s.notifier.OrderAssigned(customer.Email, order)
	}

	return order, nil
}

// DriverUpdateStatus moves one of the driver's own orders along the state
// machine (ASSIGNED -> IN_TRANSIT -> DELIVERED).
func (s *Service) DriverUpdateStatus(ctx context.Context, driverUserID, orderID, status string) (*models.Order, error) {
	driver, err := s.drivers.FindByUserID(ctx, driverUserID)
	if err != nil {
		return nil, fmt.Errorf("service.DriverUpdateStatus: %w", err)
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.DriverUpdateStatus: %w", err)
	}
	if order.DriverID == nil || *order.DriverID != driver.ID {
		return nil, models.ErrNotFound
	}

	if !CanTransition(order.Status, status) {
		return nil, models.ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("service.DriverUpdateStatus: %w", err)
	}
	log.Printf("order status: id=%s driver=%s %s -> %s", orderID, driver.ID, order.Status, status)

	order.Status = status
	return order, nil
}

// AdminAssignOrder manually hands an order to a driver, the fallback path for
// orders without a zone snapshot. Zone equality is deliberately not checked;
// manual assignment is a dispatcher's decision.
func (s *Service) AdminAssignOrder(ctx context.Context, orderID, driverID string) (*models.Order, error) {
	driver, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service.AdminAssignOrder: %w", err)
	}

	if err := s.repo.Claim(ctx, orderID, driver.ID); err != nil {
		return nil, err
	}
	log.Printf("order assigned by admin: id=%s driver=%s", orderID, driver.ID)

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.AdminAssignOrder: %w", err)
	}

	if customer, err := s.customers.FindByID(ctx, order.UserID); err == nil {
		s.notifier.OrderAssigned(customer.Email, order)
	}

	return order, nil
}

// AdminUpdateStatus sets any order status, still subject to the state machine.
func (s *Service) AdminUpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service.AdminUpdateStatus: %w", err)
	}

	if !CanTransition(order.Status, status) {
		return nil, models.ErrInvalidStatusTransition
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("service.AdminUpdateStatus: %w", err)
	}
	log.Printf("order status set by admin: id=%s %s -> %s", orderID, order.Status, status)

	order.Status = status
	return order, nil
}
