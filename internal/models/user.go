package models

import "time"

// User roles stored on the users table and carried in JWT claims.
const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

// User represents a registered account. Customers optionally carry a map pin
// and the delivery zone it was classified into; both are empty until the
// customer picks a location.
type User struct {
	ID           string     `json:"id" db:"id"`
	Nickname     string     `json:"nickname,omitempty" db:"nickname"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	AuthProvider string     `json:"auth_provider" db:"auth_provider"`
	Address      string     `json:"address,omitempty" db:"address"`
	PinLat       *float64   `json:"pin_lat,omitempty" db:"pin_lat"`
	PinLng       *float64   `json:"pin_lng,omitempty" db:"pin_lng"`
	ZoneID       *string    `json:"zone_id,omitempty" db:"zone_id"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type SignupRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// UserUpdateData defines profile fields a customer may change.
type UserUpdateData struct {
	Nickname *string `json:"nickname,omitempty" validate:"omitempty,min=2,max=50"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=300"`
}

// UpdateLocationRequest moves the customer's map pin. The server re-runs zone
// classification and persists the resulting zone id (or clears it).
type UpdateLocationRequest struct {
	Location LatLng `json:"location"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=300"`
}
