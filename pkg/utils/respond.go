package utils

import (
	"errors"
	"net/http"
	"strconv"

	"propane-delivery/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, payload)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(c echo.Context, status int, message string) error {
	return c.JSON(status, models.ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer sentinel errors to HTTP statuses.
// Unknown errors are logged and reported as a generic 500.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrDriverSuspended):
		return RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrZoneNameTaken),
		errors.Is(err, models.ErrDriverProfileExists),
		errors.Is(err, models.ErrOrderCannotBeCancelled),
		errors.Is(err, models.ErrInvalidStatusTransition),
		errors.Is(err, models.ErrOrderAlreadyClaimed),
		errors.Is(err, models.ErrOrderNotEligible):
		return RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrUnknownTankSize),
		errors.Is(err, models.ErrZoneTooFewVertices):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "An internal error occurred")
	}
}

// ExtractUserInfo pulls the authenticated user's id and role out of the
// request context, where the JWT middleware put them.
func ExtractUserInfo(c echo.Context) (userID, role string, err error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	role, _ = c.Get("userRole").(string)
	return userID, role, nil
}

// GetPageLimit reads pagination query parameters with sane defaults.
func GetPageLimit(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
