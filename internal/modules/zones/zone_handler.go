package zones

import (
	"net/http"

	"propane-delivery/internal/models"
	"propane-delivery/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for delivery zones and the public
// serviceability probe used by the location picker.
type Handler struct {
	svc ServiceInterface
}

func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CheckLocation is the public probe the map UI calls for each candidate
// point. It never fails for an out-of-zone point; the verdict says so.
func (h *Handler) CheckLocation(c echo.Context) error {
	var req models.CheckLocationRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.svc.CheckLocation(c.Request().Context(), req.Location)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to check location")
	}

	return utils.RespondWithJSON(c, http.StatusOK, result)
}

func (h *Handler) CreateZone(c echo.Context) error {
	var req models.CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	zone, err := h.svc.CreateZone(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, zone)
}

func (h *Handler) CreateZoneFromTemplate(c echo.Context) error {
	var req models.ZoneTemplateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	zone, err := h.svc.CreateZoneFromTemplate(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, zone)
}

func (h *Handler) ListZones(c echo.Context) error {
	zones, err := h.svc.ListZones(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list zones")
	}
	return utils.RespondWithJSON(c, http.StatusOK, zones)
}

func (h *Handler) GetZone(c echo.Context) error {
	zone, err := h.svc.GetZone(c.Request().Context(), c.Param("zoneId"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, zone)
}

func (h *Handler) UpdateZone(c echo.Context) error {
	var req models.UpdateZoneRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	zone, err := h.svc.UpdateZone(c.Request().Context(), c.Param("zoneId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, zone)
}

func (h *Handler) DeleteZone(c echo.Context) error {
	if err := h.svc.DeleteZone(c.Request().Context(), c.Param("zoneId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
