package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/response"
	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
	"lifeline/internal/usecase"
)

// CampaignHandler holds dependencies for campaign handlers.
type CampaignHandler struct {
	uc     usecase.CampaignUsecase
	logger *slog.Logger
}

// NewCampaignHandler is the constructor for CampaignHandler, injected by Fx.
func NewCampaignHandler(uc usecase.CampaignUsecase, logger *slog.Logger) *CampaignHandler {
	return &CampaignHandler{
		uc:     uc,
		logger: logger,
	}
}

// campaignListQuery carries the public listing filters.
type campaignListQuery struct {
	Status *entity.CampaignStatus `query:"status"`
	City   *string                `query:"city"`
	Limit  int                    `query:"limit"`
	Offset int                    `query:"offset"`
}

// List returns campaigns matching the filter.
func (h *CampaignHandler) List(c echo.Context) error {
	var query campaignListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	campaigns, err := h.uc.ListCampaigns(c.Request().Context(), repository.CampaignListFilter{
		Status: query.Status,
		City:   query.City,
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, campaigns, "")
}

// Get returns one campaign by identifier.
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid campaign identifier")
	}

	campaign, err := h.uc.GetCampaign(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, campaign, "")
}

// Create organizes a new campaign. Admin only.
func (h *CampaignHandler) Create(c echo.Context) error {
	var input usecase.CampaignInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid campaign input")
	}

	campaign, err := h.uc.CreateCampaign(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, campaign, "Campaign created successfully")
}

// Update modifies a campaign. Admin only.
func (h *CampaignHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid campaign identifier")
	}

	var input usecase.CampaignInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid campaign input")
	}

	campaign, err := h.uc.UpdateCampaign(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, campaign, "Campaign updated successfully")
}

// Delete removes a campaign. Admin only.
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid campaign identifier")
	}

	if err := h.uc.DeleteCampaign(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Campaign deleted successfully")
}

// Register signs the authenticated donor up for the campaign.
func (h *CampaignHandler) Register(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid campaign identifier")
	}

	registration, err := h.uc.RegisterDonor(c.Request().Context(), id, middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registration, "Registered successfully")
}

// CheckInQR renders the donor's check-in code as a PNG image.
func (h *CampaignHandler) CheckInQR(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid campaign identifier")
	}

	png, err := h.uc.CheckInQR(c.Request().Context(), id, middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
