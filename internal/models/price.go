package models

import "time"

// TankPrice is the unit price for one propane tank size.
type TankPrice struct {
	ID        string    `json:"id" db:"id"`
	Size      string    `json:"size" db:"size"`
	Price     float64   `json:"price" db:"price"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePriceRequest struct {
	Size  string  `json:"size" validate:"required,min=1,max=50"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

type UpdatePriceRequest struct {
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active,omitempty"`
}
