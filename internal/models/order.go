package models

import "time"

// Order statuses. Orders move PENDING -> CONFIRMED -> ASSIGNED -> IN_TRANSIT
// -> DELIVERED; CANCELLED is reachable from any state before IN_TRANSIT.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderAssigned  = "ASSIGNED"
	OrderInTransit = "IN_TRANSIT"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Order is a propane delivery order. ZoneID is a snapshot of the customer's
// zone at creation time and never changes afterwards; dispatch matches it
// against the driver's assigned zone by plain equality. A nil ZoneID means the
// customer was never geofenced (or sat outside every zone) and the order only
// moves through manual admin assignment.
type Order struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	DriverID        *string   `json:"driver_id,omitempty" db:"driver_id"`
	ZoneID          *string   `json:"zone_id,omitempty" db:"zone_id"`
	Status          string    `json:"status" db:"status"`
	TankSize        string    `json:"tank_size" db:"tank_size"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	DeliveryFee     float64   `json:"delivery_fee" db:"delivery_fee"`
	Total           float64   `json:"total" db:"total"`
	DeliveryAddress string    `json:"delivery_address" db:"delivery_address"`
	DeliveryLat     float64   `json:"delivery_lat" db:"delivery_lat"`
	DeliveryLng     float64   `json:"delivery_lng" db:"delivery_lng"`
	Notes           string    `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CreateOrderRequest is the customer request for a propane delivery.
// DeliveryLocation defaults to the customer's stored map pin when omitted.
type CreateOrderRequest struct {
	TankSize         string  `json:"tank_size" validate:"required"`
	Quantity         int     `json:"quantity" validate:"required,min=1,max=20"`
	DeliveryAddress  string  `json:"delivery_address,omitempty" validate:"omitempty,max=300"`
	DeliveryLocation *LatLng `json:"delivery_location,omitempty"`
	Notes            string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// OrderStatusRequest is the driver request to move an order along the
// delivery state machine.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=IN_TRANSIT DELIVERED"`
}

// AdminOrderStatusRequest lets an administrator set any status; the service
// still validates the transition.
type AdminOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED ASSIGNED IN_TRANSIT DELIVERED CANCELLED"`
}

// AdminAssignOrderRequest manually hands an order to a driver, the fallback
// path for orders without a zone snapshot.
type AdminAssignOrderRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid4"`
}

// DriverQueue is the zone-scoped work list returned to a driver. Message is
// set when the queue is empty for a structural reason, such as the driver
// having no assigned zone.
type DriverQueue struct {
	Orders  []*Order `json:"orders"`
	Message string   `json:"message,omitempty"`
}
