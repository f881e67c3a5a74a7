package orders

import (
	"sort"

	"propane-delivery/internal/models"
)

// statusTransitions is the order delivery state machine. CANCELLED is
// reachable from any state before the truck is on the road; DELIVERED and
// CANCELLED are terminal.
var statusTransitions = map[string][]string{
	models.OrderPending:   {models.OrderConfirmed, models.OrderAssigned, models.OrderCancelled},
	models.OrderConfirmed: {models.OrderAssigned, models.OrderCancelled},
	models.OrderAssigned:  {models.OrderInTransit, models.OrderCancelled},
	models.OrderInTransit: {models.OrderDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in the given status may still be
// cancelled. Once a delivery is in transit or complete, cancellation is
// rejected.
func Cancellable(status string) bool {
	return CanTransition(status, models.OrderCancelled)
}

// claimable reports whether an unassigned order is open for a driver to take.
func claimable(status string) bool {
	return status == models.OrderPending || status == models.OrderConfirmed
}

// EligibleForDriver is the dispatch filter: an order belongs in a driver's
// queue when it is unassigned, still claimable, and its zone snapshot equals
// the driver's assigned zone, or when it is already the driver's own order
// (any status, so delivery history stays visible). No polygon math happens
// here; the zone id was computed once at address-entry time.
func EligibleForDriver(order *models.Order, driver *models.Driver) bool {
	if order.DriverID != nil {
		return *order.DriverID == driver.ID
	}
	if driver.AssignedZoneID == nil || order.ZoneID == nil {
		return false
	}
	if !claimable(order.Status) {
		return false
	}
	return *order.ZoneID == *driver.AssignedZoneID
}

// SortQueue orders a driver's queue in place: the driver's own orders first,
// then by recency, so active work sits above available-but-unclaimed work.
func SortQueue(orders []*models.Order, driverID string) {
	mine := func(o *models.Order) bool {
		return o.DriverID != nil && *o.DriverID == driverID
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if mine(orders[i]) != mine(orders[j]) {
			return mine(orders[i])
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
