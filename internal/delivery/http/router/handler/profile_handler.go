package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/delivery/http/response"
	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/repository"
	"lifeline/internal/usecase"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetMe returns the authenticated account's profile.
func (h *ProfileHandler) GetMe(c echo.Context) error {
	profile, err := h.uc.GetProfile(c.Request().Context(), middleware.UID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// UpdateMe applies the settings-screen fields to the authenticated profile.
func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	input.UID = middleware.UID(c)

	profile, err := h.uc.UpdateProfile(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated successfully")
}

// profileListQuery carries the admin listing filters.
type profileListQuery struct {
	Role       *entity.Role       `query:"role"`
	BloodGroup *entity.BloodGroup `query:"blood_group"`
	Limit      int                `query:"limit"`
	Offset     int                `query:"offset"`
}

// List returns profiles matching the filter. Admin only.
func (h *ProfileHandler) List(c echo.Context) error {
	var query profileListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	profiles, err := h.uc.ListProfiles(c.Request().Context(), repository.ProfileListFilter{
		Role:       query.Role,
		BloodGroup: query.BloodGroup,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profiles, "")
}

// changeRoleRequest carries the target role for an admin role change.
type changeRoleRequest struct {
	Role entity.Role `json:"role"`
}

// ChangeRole sets a profile's role. Admin only.
func (h *ProfileHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	profile, err := h.uc.ChangeRole(c.Request().Context(), c.Param("uid"), req.Role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Role changed successfully")
}

// setEligibilityRequest carries the eligibility flag.
type setEligibilityRequest struct {
	Eligible bool `json:"eligible"`
}

// SetEligibility overrides a donor's eligibility. Admin only.
func (h *ProfileHandler) SetEligibility(c echo.Context) error {
	var req setEligibilityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid eligibility input")
	}

	profile, err := h.uc.SetEligibility(c.Request().Context(), c.Param("uid"), req.Eligible)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Eligibility updated successfully")
}
