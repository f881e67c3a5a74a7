package models

import "time"

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// DeliveryZone is an administrator-drawn polygonal delivery area.
// Vertices form a closed polygon; the first vertex is not repeated at the end.
type DeliveryZone struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Color       string    `json:"color,omitempty" db:"color"`
	Vertices    []LatLng  `json:"vertices" db:"vertices"`
	DeliveryFee *float64  `json:"delivery_fee,omitempty" db:"delivery_fee"`
	Description string    `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Fee returns the configured delivery fee, or zero when none is set.
func (z *DeliveryZone) Fee() float64 {
	if z.DeliveryFee == nil {
		return 0
	}
	return *z.DeliveryFee
}

// CreateZoneRequest defines the request body for drawing a new zone on the map.
type CreateZoneRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Color       string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Vertices    []LatLng `json:"vertices" validate:"required,min=3,dive"`
	DeliveryFee *float64 `json:"delivery_fee,omitempty" validate:"omitempty,gte=0"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
}

// UpdateZoneRequest defines the request body for editing a zone. All fields
// are optional; pointers distinguish "unset" from zero values.
type UpdateZoneRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Color       *string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Vertices    *[]LatLng `json:"vertices,omitempty" validate:"omitempty,min=3,dive"`
	DeliveryFee *float64  `json:"delivery_fee,omitempty" validate:"omitempty,gte=0"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// ZoneTemplateRequest creates a square zone around a center point, a quick
// alternative to hand-drawing a polygon.
type ZoneTemplateRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Center      LatLng   `json:"center"`
	HalfSizeKm  float64  `json:"half_size_km" validate:"required,gt=0,lte=100"`
	DeliveryFee *float64 `json:"delivery_fee,omitempty" validate:"omitempty,gte=0"`
	Color       string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// CheckLocationRequest is the serviceability probe sent by the location picker.
type CheckLocationRequest struct {
	Location LatLng `json:"location"`
}

// ServiceabilityResult is the verdict returned to the location picker and to
// signup/order flows. When the point is outside every zone, NearestZone and
// DistanceKm describe the closest option.
type ServiceabilityResult struct {
	IsServiceable bool          `json:"is_serviceable"`
	Zone          *DeliveryZone `json:"zone,omitempty"`
	DeliveryFee   float64       `json:"delivery_fee"`
	NearestZone   *DeliveryZone `json:"nearest_zone,omitempty"`
	DistanceKm    float64       `json:"distance_km,omitempty"`
	Message       string        `json:"message"`
	Suggestions   []string      `json:"suggestions,omitempty"`
}
