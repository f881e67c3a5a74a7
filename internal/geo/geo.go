// Package geo provides the pure geometry used by delivery-zone geofencing:
// a ray-casting point-in-polygon test, Haversine great-circle distance, and
// a vertex-mean centroid.
package geo

import (
	"math"

	"propane-delivery/internal/models"
)

// EarthRadiusKm is Earth's mean radius used by the Haversine formula.
const EarthRadiusKm = 6371.0

// PointInPolygon reports whether point lies inside the polygon using the
// even-odd ray-casting rule. Latitude is treated as the x axis and longitude
// as the y axis; a horizontal ray is cast at the point's longitude and the
// inside flag toggles on every edge crossing left of the point.
//
// Polygons with fewer than three vertices contain nothing. Points exactly on
// a boundary edge are not classified consistently; that is the standard
// ray-casting ambiguity and callers must not rely on boundary-exact behavior.
func PointInPolygon(point models.LatLng, polygon []models.LatLng) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	x, y := point.Lat, point.Lng
	inside := false

	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := polygon[i].Lat, polygon[i].Lng
		xj, yj := polygon[j].Lat, polygon[j].Lng

		if (yi > y) != (yj > y) {
			intercept := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < intercept {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// HaversineKm returns the great-circle distance between two coordinates in
// kilometers.
func HaversineKm(p1, p2 models.LatLng) float64 {
	dLat := toRadians(p2.Lat - p1.Lat)
	dLng := toRadians(p2.Lng - p1.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p1.Lat))*math.Cos(toRadians(p2.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Centroid returns the arithmetic mean of the polygon's vertices. This is not
// the true area centroid, but it is close enough for "how far away is this
// zone" messaging. The zero value is returned for an empty polygon.
func Centroid(polygon []models.LatLng) models.LatLng {
	if len(polygon) == 0 {
		return models.LatLng{}
	}

	var sumLat, sumLng float64
	for _, v := range polygon {
		sumLat += v.Lat
		sumLng += v.Lng
	}

	n := float64(len(polygon))
	return models.LatLng{Lat: sumLat / n, Lng: sumLng / n}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
