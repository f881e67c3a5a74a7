package zones

import (
	"fmt"

	"propane-delivery/internal/geo"
	"propane-delivery/internal/models"
)

// ResolveZone returns the first zone in list order whose polygon contains the
// point, or nil when no zone does. When zones overlap, whichever appears
// earliest in the supplied list wins; there is no other tie-break.
func ResolveZone(point models.LatLng, zones []*models.DeliveryZone) *models.DeliveryZone {
	for _, zone := range zones {
		if geo.PointInPolygon(point, zone.Vertices) {
			return zone
		}
	}
	return nil
}

// NearestZone returns the zone whose vertex-mean centroid is closest to the
// point, with the distance in kilometers. Returns nil on an empty zone list.
// Ties go to the first minimum encountered.
func NearestZone(point models.LatLng, zones []*models.DeliveryZone) (*models.DeliveryZone, float64) {
	var nearest *models.DeliveryZone
	var best float64

	for _, zone := range zones {
		d := geo.HaversineKm(point, geo.Centroid(zone.Vertices))
		if nearest == nil || d < best {
			nearest = zone
			best = d
		}
	}
	return nearest, best
}

// CheckServiceability classifies a candidate delivery point against the given
// zone snapshot and produces the verdict shown to the customer. It is pure:
// fetching the active zone set and persisting the resulting zone id are the
// caller's responsibility.
func CheckServiceability(point models.LatLng, zones []*models.DeliveryZone) *models.ServiceabilityResult {
	if zone := ResolveZone(point, zones); zone != nil {
		return &models.ServiceabilityResult{
			IsServiceable: true,
			Zone:          zone,
			DeliveryFee:   zone.Fee(),
			Message:       fmt.Sprintf("%s delivery zone", zone.Name),
		}
	}

	if len(zones) == 0 {
		return &models.ServiceabilityResult{
			IsServiceable: false,
			Message:       "No delivery zones are configured yet",
			Suggestions:   []string{"Contact us to find out when delivery reaches your area"},
		}
	}

	nearest, distanceKm := NearestZone(point, zones)
	return &models.ServiceabilityResult{
		IsServiceable: false,
		NearestZone:   nearest,
		DistanceKm:    distanceKm,
		Message:       fmt.Sprintf("This location is outside our delivery area, about %.1f km from %s", distanceKm, nearest.Name),
		Suggestions: []string{
			"Try choosing a location closer to " + nearest.Name,
			"Contact us if you think your address should be covered",
		},
	}
}
