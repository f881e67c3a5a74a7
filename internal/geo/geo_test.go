package geo

import (
	"math"
	"testing"

	"propane-delivery/internal/models"
)

var square = []models.LatLng{
	{Lat: 0, Lng: 0},
	{Lat: 0, Lng: 10},
	{Lat: 10, Lng: 10},
	{Lat: 10, Lng: 0},
}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name    string
		point   models.LatLng
		polygon []models.LatLng
		want    bool
	}{
		{"center of square", models.LatLng{Lat: 5, Lng: 5}, square, true},
		{"outside both axes", models.LatLng{Lat: 15, Lng: 15}, square, false},
		{"outside on longitude only", models.LatLng{Lat: 5, Lng: -1}, square, false},
		{"near a corner, inside", models.LatLng{Lat: 0.5, Lng: 0.5}, square, true},
		{"two-vertex polygon contains nothing", models.LatLng{Lat: 0.5, Lng: 0.5}, []models.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}}, false},
		{"empty polygon contains nothing", models.LatLng{Lat: 0, Lng: 0}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.point, tt.polygon); got != tt.want {
				t.Fatalf("PointInPolygon(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestPointInPolygon_Concave(t *testing.T) {
	// L-shaped polygon: the notch at the top right is outside.
	l := []models.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 10, Lng: 0},
		{Lat: 10, Lng: 5},
		{Lat: 5, Lng: 5},
		{Lat: 5, Lng: 10},
		{Lat: 0, Lng: 10},
	}

	if !PointInPolygon(models.LatLng{Lat: 2, Lng: 8}, l) {
		t.Fatal("point in the lower arm should be inside")
	}
	if PointInPolygon(models.LatLng{Lat: 8, Lng: 8}, l) {
		t.Fatal("point in the notch should be outside")
	}
}

func TestPointInPolygon_CentroidOfConvexZone(t *testing.T) {
	// The vertex-mean centroid of any convex polygon lies inside it.
	triangle := []models.LatLng{
		{Lat: 40.0, Lng: -3.0},
		{Lat: 40.2, Lng: -3.1},
		{Lat: 40.1, Lng: -2.8},
	}
	for _, poly := range [][]models.LatLng{square, triangle} {
		if !PointInPolygon(Centroid(poly), poly) {
			t.Fatalf("centroid %v should be inside its own polygon", Centroid(poly))
		}
	}
}

func TestHaversineKm(t *testing.T) {
	// Same point is zero distance.
	p := models.LatLng{Lat: 10, Lng: 20}
	if d := HaversineKm(p, p); d > 1e-9 {
		t.Fatalf("distance to self = %v, want ~0", d)
	}

	// One degree of latitude along a meridian is ~111.19 km.
	d := HaversineKm(models.LatLng{Lat: 0, Lng: 0}, models.LatLng{Lat: 1, Lng: 0})
	if math.Abs(d-111.19) > 0.1 {
		t.Fatalf("one degree latitude = %v km, want ~111.19", d)
	}

	// Symmetric in its arguments.
	a := models.LatLng{Lat: 51.5, Lng: -0.12}
	b := models.LatLng{Lat: 48.85, Lng: 2.35}
	if math.Abs(HaversineKm(a, b)-HaversineKm(b, a)) > 1e-9 {
		t.Fatal("distance should be symmetric")
	}
}

func TestCentroid(t *testing.T) {
	c := Centroid(square)
	if c.Lat != 5 || c.Lng != 5 {
		t.Fatalf("centroid of square = %v, want (5,5)", c)
	}

	if c := Centroid(nil); c.Lat != 0 || c.Lng != 0 {
		t.Fatalf("centroid of empty polygon = %v, want zero value", c)
	}
}
