package models

import "time"

// Driver operational statuses.
const (
	DriverAvailable = "AVAILABLE"
	DriverBusy      = "BUSY"
	DriverOffline   = "OFFLINE"
	DriverSuspended = "SUSPENDED"
)

// Driver is the delivery-side profile linked to a user account. The assigned
// zone is set by an administrator as a dispatch decision; it is never derived
// from the driver's reported location.
type Driver struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Phone          string    `json:"phone,omitempty" db:"phone"`
	VehiclePlate   string    `json:"vehicle_plate,omitempty" db:"vehicle_plate"`
	AssignedZoneID *string   `json:"assigned_zone_id,omitempty" db:"assigned_zone_id"`
	Lat            *float64  `json:"lat,omitempty" db:"lat"`
	Lng            *float64  `json:"lng,omitempty" db:"lng"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CreateDriverRequest is the admin request to promote a user to driver.
type CreateDriverRequest struct {
	UserID       string `json:"user_id" validate:"required,uuid4"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,e164"`
	VehiclePlate string `json:"vehicle_plate,omitempty" validate:"omitempty,max=20"`
}

// DriverStatusRequest lets a driver toggle their own availability.
// SUSPENDED is admin-only and deliberately absent from the oneof.
type DriverStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE BUSY OFFLINE"`
}

// DriverLocationRequest reports the driver's current position. Location is
// free-form and independent of zone membership.
type DriverLocationRequest struct {
	Location LatLng `json:"location"`
}

// AssignDriverZoneRequest is the admin request that points a driver at a
// delivery zone. A null zone id detaches the driver from dispatch.
type AssignDriverZoneRequest struct {
	ZoneID *string `json:"zone_id" validate:"omitempty,uuid4"`
}
