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

// DonationHandler holds dependencies for donation handlers.
type DonationHandler struct {
	uc     usecase.DonationUsecase
	logger *slog.Logger
}

// NewDonationHandler is the constructor for DonationHandler, injected by Fx.
func NewDonationHandler(uc usecase.DonationUsecase, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{
		uc:     uc,
		logger: logger,
	}
}

// Record stores a donation for the authenticated donor, pending admin
// verification.
func (h *DonationHandler) Record(c echo.Context) error {
	var input usecase.RecordDonationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid donation input")
	}

	input.DonorUID = middleware.UID(c)

	donation, err := h.uc.RecordDonation(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, donation, "Donation recorded successfully")
}

// ListMine returns the authenticated donor's donations.
func (h *DonationHandler) ListMine(c echo.Context) error {
	uid := middleware.UID(c)

	donations, err := h.uc.ListDonations(c.Request().Context(), repository.DonationListFilter{
		DonorUID: &uid,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donations, "")
}

// donationListQuery carries the admin listing filters.
type donationListQuery struct {
	DonorUID   *string                `query:"donor_uid"`
	BankID     *uuid.UUID             `query:"bank_id"`
	CampaignID *uuid.UUID             `query:"campaign_id"`
	Status     *entity.DonationStatus `query:"status"`
	Limit      int                    `query:"limit"`
	Offset     int                    `query:"offset"`
}

// List returns donations matching the filter. Admin only.
func (h *DonationHandler) List(c echo.Context) error {
	var query donationListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	donations, err := h.uc.ListDonations(c.Request().Context(), repository.DonationListFilter{
		DonorUID:   query.DonorUID,
		BankID:     query.BankID,
		CampaignID: query.CampaignID,
		Status:     query.Status,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donations, "")
}

// Get returns one donation by identifier. Admin only.
func (h *DonationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid donation identifier")
	}

	donation, err := h.uc.GetDonation(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donation, "")
}

// Verify marks a recorded donation verified, deferring the donor and
// crediting the bank inventory. Admin only.
func (h *DonationHandler) Verify(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid donation identifier")
	}

	donation, err := h.uc.VerifyDonation(c.Request().Context(), id, middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donation, "Donation verified successfully")
}

// Reject marks a recorded donation rejected with no side effects. Admin only.
func (h *DonationHandler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid donation identifier")
	}

	donation, err := h.uc.RejectDonation(c.Request().Context(), id, middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donation, "Donation rejected")
}
