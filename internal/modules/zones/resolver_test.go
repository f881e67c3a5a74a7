package zones

import (
	"testing"

	"propane-delivery/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareZone(id, name string, minLat, minLng, size float64) *models.DeliveryZone {
	return &models.DeliveryZone{
		ID:   id,
		Name: name,
		Vertices: []models.LatLng{
			{Lat: minLat, Lng: minLng},
			{Lat: minLat, Lng: minLng + size},
			{Lat: minLat + size, Lng: minLng + size},
			{Lat: minLat + size, Lng: minLng},
		},
		IsActive: true,
	}
}

func TestResolveZone_FirstMatchWinsOnOverlap(t *testing.T) {
	// Two overlapping squares; (5,5) lies inside both.
	a := squareZone("za", "North", 0, 0, 10)
	b := squareZone("zb", "North Overlap", 2, 2, 10)
	point := models.LatLng{Lat: 5, Lng: 5}

	// Deterministic across repeated calls with the same list order.
	for i := 0; i < 10; i++ {
		got := ResolveZone(point, []*models.DeliveryZone{a, b})
		require.NotNil(t, got)
		assert.Equal(t, "za", got.ID)
	}

	// Reversing the list flips the winner; list order is the only rule.
	got := ResolveZone(point, []*models.DeliveryZone{b, a})
	require.NotNil(t, got)
	assert.Equal(t, "zb", got.ID)
}

func TestResolveZone_NoMatch(t *testing.T) {
	a := squareZone("za", "North", 0, 0, 10)
	assert.Nil(t, ResolveZone(models.LatLng{Lat: 50, Lng: 50}, []*models.DeliveryZone{a}))
	assert.Nil(t, ResolveZone(models.LatLng{Lat: 5, Lng: 5}, nil))
}

func TestNearestZone_PicksMinimumCentroidDistance(t *testing.T) {
	// Point at origin; zone centroids at increasing latitude offsets. One
	// degree of latitude is ~111 km, so these sit at roughly 5, 12 and 3 km.
	point := models.LatLng{Lat: 0, Lng: 0}
	far := squareZone("z5", "Five", 0.045-0.005, -0.005, 0.01)   // centroid ~0.045 deg -> ~5 km
	farther := squareZone("z12", "Twelve", 0.108-0.005, -0.005, 0.01) // ~12 km
	near := squareZone("z3", "Three", 0.027-0.005, -0.005, 0.01) // ~3 km

	zone, distanceKm := NearestZone(point, []*models.DeliveryZone{far, farther, near})
	require.NotNil(t, zone)
	assert.Equal(t, "z3", zone.ID)
	assert.InDelta(t, 3.0, distanceKm, 0.2)
}

func TestNearestZone_EmptyList(t *testing.T) {
	zone, _ := NearestZone(models.LatLng{Lat: 1, Lng: 1}, nil)
	assert.Nil(t, zone)
}

func TestCheckServiceability_InsideZone(t *testing.T) {
	fee := 7.5
	zone := squareZone("z1", "Downtown", 0, 0, 10)
	zone.DeliveryFee = &fee

	result := CheckServiceability(models.LatLng{Lat: 5, Lng: 5}, []*models.DeliveryZone{zone})

	require.True(t, result.IsServiceable)
	require.NotNil(t, result.Zone)
	assert.Equal(t, "z1", result.Zone.ID)
	assert.Equal(t, 7.5, result.DeliveryFee)
	assert.Equal(t, "Downtown delivery zone", result.Message)
	assert.Nil(t, result.NearestZone)
}

func TestCheckServiceability_NilFeeDefaultsToZero(t *testing.T) {
	zone := squareZone("z1", "Downtown", 0, 0, 10)

	result := CheckServiceability(models.LatLng{Lat: 5, Lng: 5}, []*models.DeliveryZone{zone})

	require.True(t, result.IsServiceable)
	assert.Zero(t, result.DeliveryFee)
}

func TestCheckServiceability_OutsideAllZones(t *testing.T) {
	zone := squareZone("z1", "Downtown", 0, 0, 1)

	result := CheckServiceability(models.LatLng{Lat: 10, Lng: 10}, []*models.DeliveryZone{zone})

	require.False(t, result.IsServiceable)
	assert.Nil(t, result.Zone)
	require.NotNil(t, result.NearestZone)
	assert.Equal(t, "z1", result.NearestZone.ID)
	assert.Greater(t, result.DistanceKm, 0.0)
	assert.Contains(t, result.Message, "outside our delivery area")
	assert.NotEmpty(t, result.Suggestions)
}

func TestCheckServiceability_NoZonesConfigured(t *testing.T) {
	// Must not fail on an empty zone set, and the verdict is stable.
	for i := 0; i < 3; i++ {
		result := CheckServiceability(models.LatLng{Lat: 10, Lng: 10}, nil)

		require.False(t, result.IsServiceable)
		assert.Nil(t, result.Zone)
		assert.Nil(t, result.NearestZone)
		assert.Contains(t, result.Message, "No delivery zones")
	}
}
