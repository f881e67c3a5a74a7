package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrZoneNameTaken is returned when creating or renaming a delivery zone
	// to a name that already exists.
	ErrZoneNameTaken = errors.New("a delivery zone with this name already exists")

	// ErrZoneTooFewVertices is returned when saving a zone polygon with
	// fewer than three vertices.
	ErrZoneTooFewVertices = errors.New("a delivery zone needs at least three vertices")

	// ErrOrderCannotBeCancelled is returned when an attempt is made to cancel
	// an order that is already in transit, delivered, or cancelled.
	ErrOrderCannotBeCancelled = errors.New("order cannot be cancelled")

	// ErrInvalidStatusTransition is returned when an order status change does
	// not follow the delivery state machine.
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	// ErrOrderAlreadyClaimed is returned when a driver tries to claim an order
	// that another driver took first.
	ErrOrderAlreadyClaimed = errors.New("order has already been claimed")

	// ErrOrderNotEligible is returned when a driver tries to claim an order
	// outside their assigned zone or in a non-claimable state.
	ErrOrderNotEligible = errors.New("order is not eligible for this driver")

	// ErrUnknownTankSize is returned when an order names a tank size with no
	// active price.
	ErrUnknownTankSize = errors.New("unknown or inactive tank size")

	// ErrDriverProfileExists is returned when promoting a user who already
	// has a driver profile.
	ErrDriverProfileExists = errors.New("user already has a driver profile")

	// ErrDriverSuspended is returned when a suspended driver tries to change
	// their own status or claim work.
	ErrDriverSuspended = errors.New("driver account is suspended")
)

// ErrorResponse is the JSON body returned for all error responses.
type ErrorResponse struct {
	Message string `json:"message"`
}
