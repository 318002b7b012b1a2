package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"lifeline/internal/delivery/http/response"
	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
	"lifeline/internal/usecase"
)

// BankHandler holds dependencies for blood bank handlers.
type BankHandler struct {
	uc     usecase.BloodBankUsecase
	logger *slog.Logger
}

// NewBankHandler is the constructor for BankHandler, injected by Fx.
func NewBankHandler(uc usecase.BloodBankUsecase, logger *slog.Logger) *BankHandler {
	return &BankHandler{
		uc:     uc,
		logger: logger,
	}
}

// bankListQuery carries the public listing filters.
type bankListQuery struct {
	City   *string            `query:"city"`
	Group  *entity.BloodGroup `query:"group"`
	Limit  int                `query:"limit"`
	Offset int                `query:"offset"`
}

// List returns blood banks matching the filter.
func (h *BankHandler) List(c echo.Context) error {
	var query bankListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	banks, err := h.uc.ListBanks(c.Request().Context(), repository.BloodBankListFilter{
		City:           query.City,
		AvailableGroup: query.Group,
		Limit:          query.Limit,
		Offset:         query.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, banks, "")
}

// Nearby returns geocoded banks within the radius, closest first.
func (h *BankHandler) Nearby(c echo.Context) error {
	var input usecase.NearbyBanksInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid nearby query")
	}

	banks, err := h.uc.NearbyBanks(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, banks, "")
}

// Get returns one blood bank by identifier.
func (h *BankHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bank identifier")
	}

	bank, err := h.uc.GetBank(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bank, "")
}

// Create registers a new blood bank. Admin only.
func (h *BankHandler) Create(c echo.Context) error {
	var input usecase.BankInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bank input")
	}

	bank, err := h.uc.CreateBank(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, bank, "Bank created successfully")
}

// Update modifies a blood bank. Admin only.
func (h *BankHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bank identifier")
	}

	var input usecase.BankInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid bank input")
	}

	bank, err := h.uc.UpdateBank(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bank, "Bank updated successfully")
}

// Delete removes a blood bank. Admin only.
func (h *BankHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bank identifier")
	}

	if err := h.uc.DeleteBank(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Bank deleted successfully")
}

// adjustInventoryRequest carries an admin stock correction.
type adjustInventoryRequest struct {
	BloodGroup entity.BloodGroup `json:"blood_group"`
	Delta      int               `json:"delta"`
}

// AdjustInventory applies an admin stock correction. Admin only.
func (h *BankHandler) AdjustInventory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bank identifier")
	}

	var req adjustInventoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid inventory input")
	}

	bank, err := h.uc.AdjustInventory(c.Request().Context(), id, req.BloodGroup, req.Delta)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, bank, "Inventory adjusted successfully")
}
