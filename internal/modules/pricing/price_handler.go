package pricing

import (
	"net/http"

	"propane-delivery/internal/models"
	"propane-delivery/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler handles tank price management. This surface is deliberately thin:
// guarded field updates with no business logic beyond uniqueness of sizes,
// so the handler talks to the repository directly.
type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

// ListPrices is public: the order form needs the catalog before login.
func (h *Handler) ListPrices(c echo.Context) error {
	prices, err := h.repo.ListAll(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list prices")
	}
	return utils.RespondWithJSON(c, http.StatusOK, prices)
}

func (h *Handler) CreatePrice(c echo.Context) error {
	var req models.CreatePriceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	price, err := h.repo.Create(c.Request().Context(), &models.TankPrice{
		ID:    uuid.New().String(),
		Size:  req.Size,
		Price: req.Price,
	})
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, price)
}

func (h *Handler) UpdatePrice(c echo.Context) error {
	var req models.UpdatePriceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	price, err := h.repo.Update(c.Request().Context(), c.Param("priceId"), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, price)
}

func (h *Handler) DeletePrice(c echo.Context) error {
	if err := h.repo.Delete(c.Request().Context(), c.Param("priceId")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
