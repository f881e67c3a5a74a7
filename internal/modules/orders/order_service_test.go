package orders

import (
	"context"
	"testing"
	"time"

	"propane-delivery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory test doubles ---

type fakeOrderRepo struct {
	orders map[string]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	cp := *order
	cp.CreatedAt = time.Now()
	f.orders[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	if o, ok := f.orders[orderID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, models.ErrNotFound
}

func (f *fakeOrderRepo) ListByUserID(_ context.Context, userID string, _, _ int) ([]*models.Order, int, error) {
	var out []*models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context, _, _ int) ([]*models.Order, int, error) {
	var out []*models.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) ListDriverQueue(_ context.Context, driverID, zoneID string) ([]*models.Order, error) {
	driver := &models.Driver{ID: driverID, AssignedZoneID: &zoneID}
	var out []*models.Order
	for _, o := range f.orders {
		if EligibleForDriver(o, driver) {
			out = append(out, o)
		}
	}
	SortQueue(out, driverID)
	return out, nil
}

func (f *fakeOrderRepo) Claim(_ context.Context, orderID, driverID string) error {
	o, ok := f.orders[orderID]
	if !ok || o.DriverID != nil || !claimable(o.Status) {
		return models.ErrOrderAlreadyClaimed
	}
	o.DriverID = &driverID
	o.Status = models.OrderAssigned
	return nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID, status string) error {
	o, ok := f.orders[orderID]
	if !ok {
		return models.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateStatusForUser(_ context.Context, orderID, userID, status string) error {
	o, ok := f.orders[orderID]
	if !ok || o.UserID != userID {
		return models.ErrNotFound
	}
	o.Status = status
	return nil
}

type fakeCustomers struct {
	users map[string]*models.User
}

func (f *fakeCustomers) FindByID(_ context.Context, userID string) (*models.User, error) {
	if u, ok := f.users[userID]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

type fakeDrivers struct {
	drivers map[string]*models.Driver
}

func (f *fakeDrivers) FindByID(_ context.Context, driverID string) (*models.Driver, error) {
	for _, d := range f.drivers {
		if d.ID == driverID {
			return d, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeDrivers) FindByUserID(_ context.Context, userID string) (*models.Driver, error) {
	if d, ok := f.drivers[userID]; ok {
		return d, nil
	}
	return nil, models.ErrNotFound
}

type fakePrices struct{ prices map[string]float64 }

func (f *fakePrices) FindActiveBySize(_ context.Context, size string) (*models.TankPrice, error) {
	if p, ok := f.prices[size]; ok {
		return &models.TankPrice{ID: "p-" + size, Size: size, Price: p, IsActive: true}, nil
	}
	return nil, models.ErrNotFound
}

type fakeZones struct{ zones map[string]*models.DeliveryZone }

func (f *fakeZones) FindByID(_ context.Context, zoneID string) (*models.DeliveryZone, error) {
	if z, ok := f.zones[zoneID]; ok {
		return z, nil
	}
	return nil, models.ErrNotFound
}

type noopNotifier struct{}

func (noopNotifier) OrderReceived(string, *models.Order) {}
func (noopNotifier) OrderAssigned(string, *models.Order) {}

func newTestService() (*Service, *fakeOrderRepo, *fakeCustomers, *fakeDrivers) {
	fee := 5.0
	repo := newFakeOrderRepo()
	customers := &fakeCustomers{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "u1@example.com", ZoneID: strPtr("Z1"), Address: "12 Elm St"},
		"u2": {ID: "u2", Email: "u2@example.com"}, // never geofenced
	}}
	drivers := &fakeDrivers{drivers: map[string]*models.Driver{
		"du1": {ID: "d1", UserID: "du1", AssignedZoneID: strPtr("Z1"), Status: models.DriverAvailable},
		"du2": {ID: "d2", UserID: "du2", Status: models.DriverAvailable}, // no zone
	}}
	prices := &fakePrices{prices: map[string]float64{"20lb": 30.0}}
	zones := &fakeZones{zones: map[string]*models.DeliveryZone{
		"Z1": {ID: "Z1", Name: "Downtown", DeliveryFee: &fee},
	}}
	return NewService(repo, customers, drivers, prices, zones, noopNotifier{}), repo, customers, drivers
}

// --- tests ---

func TestCreateOrder_SnapshotsZoneAndPrices(t *testing.T) {
	svc, _, _, _ := newTestService()

	order, err := svc.CreateOrder(context.Background(), "u1", models.CreateOrderRequest{
		TankSize: "20lb",
		Quantity: 2,
	})
	require.NoError(t, err)

	require.NotNil(t, order.ZoneID)
	assert.Equal(t, "Z1", *order.ZoneID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 30.0, order.UnitPrice)
	assert.Equal(t, 5.0, order.DeliveryFee)
	assert.Equal(t, 65.0, order.Total)
	assert.Equal(t, "12 Elm St", order.DeliveryAddress)
}

func TestCreateOrder_SnapshotIsStableAcrossUserZoneChanges(t *testing.T) {
	svc, repo, customers, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)
	require.Equal(t, "Z1", *order.ZoneID)

	// The customer moves into another zone; the existing order keeps Z1.
	customers.users["u1"].ZoneID = strPtr("Z2")

	stored, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ZoneID)
	assert.Equal(t, "Z1", *stored.ZoneID)
}

func TestCreateOrder_NoZoneCustomerGetsNullZoneOrder(t *testing.T) {
	svc, _, _, drivers := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u2", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	assert.Nil(t, order.ZoneID)
	assert.Zero(t, order.DeliveryFee)

	// A null-zone order never reaches any driver's queue.
	assert.False(t, EligibleForDriver(order, drivers.drivers["du1"]))
}

func TestCreateOrder_UnknownTankSize(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateOrder(context.Background(), "u1", models.CreateOrderRequest{TankSize: "500gal", Quantity: 1})
	assert.ErrorIs(t, err, models.ErrUnknownTankSize)
}

func TestCancelOrder(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.CancelOrder(ctx, order.ID, "u1"))
	stored, _ := repo.FindByID(ctx, order.ID)
	assert.Equal(t, models.OrderCancelled, stored.Status)
}

func TestCancelOrder_RejectedOnceInTransit(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, models.OrderInTransit))

	err = svc.CancelOrder(ctx, order.ID, "u1")
	assert.ErrorIs(t, err, models.ErrOrderCannotBeCancelled)
}

func TestCancelOrder_OtherUsersOrderLooksMissing(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	err = svc.CancelOrder(ctx, order.ID, "u2")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDriverQueue_ZoneScoped(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	inZone, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, "u2", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1}) // null zone
	require.NoError(t, err)

	queue, err := svc.DriverQueue(ctx, "du1")
	require.NoError(t, err)
	require.Len(t, queue.Orders, 1)
	assert.Equal(t, inZone.ID, queue.Orders[0].ID)
	assert.Empty(t, queue.Message)
}

func TestDriverQueue_NoAssignedZoneIsEmptyWithMessage(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	queue, err := svc.DriverQueue(ctx, "du2")
	require.NoError(t, err)
	assert.Empty(t, queue.Orders)
	assert.Contains(t, queue.Message, "No delivery zone assigned")
}

func TestClaimOrder(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	claimed, err := svc.ClaimOrder(ctx, "du1", order.ID)
	require.NoError(t, err)
	require.NotNil(t, claimed.DriverID)
	assert.Equal(t, "d1", *claimed.DriverID)
	assert.Equal(t, models.OrderAssigned, claimed.Status)

	// The loser of a claim race gets a conflict.
	_, err = svc.ClaimOrder(ctx, "du1", order.ID)
	assert.Error(t, err)

	stored, _ := repo.FindByID(ctx, order.ID)
	assert.Equal(t, "d1", *stored.DriverID)
}

func TestClaimOrder_OutOfZoneRejected(t *testing.T) {
	svc, _, _, drivers := newTestService()
	ctx := context.Background()

	drivers.drivers["du2"].AssignedZoneID = strPtr("Z9")

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	_, err = svc.ClaimOrder(ctx, "du2", order.ID)
	assert.ErrorIs(t, err, models.ErrOrderNotEligible)
}

func TestDriverUpdateStatus_FollowsStateMachine(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "u1", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.ClaimOrder(ctx, "du1", order.ID)
	require.NoError(t, err)

	// DELIVERED straight from ASSIGNED is not a legal move.
	_, err = svc.DriverUpdateStatus(ctx, "du1", order.ID, models.OrderDelivered)
	assert.ErrorIs(t, err, models.ErrInvalidStatusTransition)

	updated, err := svc.DriverUpdateStatus(ctx, "du1", order.ID, models.OrderInTransit)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInTransit, updated.Status)

	updated, err = svc.DriverUpdateStatus(ctx, "du1", order.ID, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, updated.Status)
}

func TestAdminAssignOrder_IgnoresZoneEquality(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	// u2 has no zone; only manual assignment can move this order.
	order, err := svc.CreateOrder(ctx, "u2", models.CreateOrderRequest{TankSize: "20lb", Quantity: 1})
	require.NoError(t, err)

	assigned, err := svc.AdminAssignOrder(ctx, order.ID, "d2")
	require.NoError(t, err)
	require.NotNil(t, assigned.DriverID)
	assert.Equal(t, "d2", *assigned.DriverID)
	assert.Equal(t, models.OrderAssigned, assigned.Status)
}
