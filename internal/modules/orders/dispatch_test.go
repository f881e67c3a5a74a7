package orders

import (
	"testing"
	"time"

	"propane-delivery/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestEligibleForDriver(t *testing.T) {
	z1 := "Z1"
	driver := &models.Driver{ID: "d1", AssignedZoneID: &z1}

	tests := []struct {
		name  string
		order models.Order
		want  bool
	}{
		{
			"unassigned pending order in driver's zone",
			models.Order{ZoneID: strPtr("Z1"), Status: models.OrderPending},
			true,
		},
		{
			"unassigned confirmed order in driver's zone",
			models.Order{ZoneID: strPtr("Z1"), Status: models.OrderConfirmed},
			true,
		},
		{
			"unassigned order in another zone",
			models.Order{ZoneID: strPtr("Z2"), Status: models.OrderPending},
			false,
		},
		{
			"order without zone snapshot never dispatches",
			models.Order{Status: models.OrderPending},
			false,
		},
		{
			"cancelled order is not claimable",
			models.Order{ZoneID: strPtr("Z1"), Status: models.OrderCancelled},
			false,
		},
		{
			"own order stays visible regardless of status",
			models.Order{DriverID: strPtr("d1"), ZoneID: strPtr("Z2"), Status: models.OrderDelivered},
			true,
		},
		{
			"another driver's order is gone even with matching zone",
			models.Order{DriverID: strPtr("d2"), ZoneID: strPtr("Z1"), Status: models.OrderAssigned},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibleForDriver(&tt.order, driver))
		})
	}
}

func TestEligibleForDriver_NoAssignedZone(t *testing.T) {
	driver := &models.Driver{ID: "d1"}

	unassigned := &models.Order{ZoneID: strPtr("Z1"), Status: models.OrderPending}
	assert.False(t, EligibleForDriver(unassigned, driver), "driver without a zone sees no available work")

	own := &models.Order{DriverID: strPtr("d1"), ZoneID: strPtr("Z1"), Status: models.OrderInTransit}
	assert.True(t, EligibleForDriver(own, driver), "already-assigned own orders remain visible")
}

func TestEligibleForDriver_AssignmentMovesOrderBetweenQueues(t *testing.T) {
	z1 := "Z1"
	z1Driver := &models.Driver{ID: "d1", AssignedZoneID: &z1}
	otherDriver := &models.Driver{ID: "d2"}

	order := &models.Order{ZoneID: strPtr("Z1"), Status: models.OrderPending}
	assert.True(t, EligibleForDriver(order, z1Driver))

	// Assigning to the other driver removes it from d1's view and adds it to
	// d2's "mine" view regardless of zone equality.
	order.DriverID = strPtr("d2")
	order.Status = models.OrderAssigned
	assert.False(t, EligibleForDriver(order, z1Driver))
	assert.True(t, EligibleForDriver(order, otherDriver))
}

func TestSortQueue_OwnOrdersFirstThenRecency(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	queue := []*models.Order{
		{ID: "old-unclaimed", CreatedAt: base},
		{ID: "new-unclaimed", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "mine-old", DriverID: strPtr("d1"), CreatedAt: base.Add(-time.Hour)},
		{ID: "mine-new", DriverID: strPtr("d1"), CreatedAt: base.Add(time.Hour)},
	}

	SortQueue(queue, "d1")

	got := []string{queue[0].ID, queue[1].ID, queue[2].ID, queue[3].ID}
	assert.Equal(t, []string{"mine-new", "mine-old", "new-unclaimed", "old-unclaimed"}, got)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.OrderPending, models.OrderConfirmed))
	assert.True(t, CanTransition(models.OrderConfirmed, models.OrderAssigned))
	assert.True(t, CanTransition(models.OrderAssigned, models.OrderInTransit))
	assert.True(t, CanTransition(models.OrderInTransit, models.OrderDelivered))

	assert.False(t, CanTransition(models.OrderInTransit, models.OrderCancelled))
	assert.False(t, CanTransition(models.OrderDelivered, models.OrderCancelled))
	assert.False(t, CanTransition(models.OrderDelivered, models.OrderPending))
	assert.False(t, CanTransition(models.OrderCancelled, models.OrderPending))
}

func TestCancellable(t *testing.T) {
	for status, want := range map[string]bool{
		models.OrderPending:   true,
		models.OrderConfirmed: true,
		models.OrderAssigned:  true,
		models.OrderInTransit: false,
		models.OrderDelivered: false,
		models.OrderCancelled: false,
	} {
		assert.Equal(t, want, Cancellable(status), "status %s", status)
	}
}
