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

// RequestHandler holds dependencies for blood request handlers.
type RequestHandler struct {
	uc     usecase.BloodRequestUsecase
	logger *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler, injected by Fx.
func NewRequestHandler(uc usecase.BloodRequestUsecase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create submits a blood request on behalf of the authenticated account.
func (h *RequestHandler) Create(c echo.Context) error {
	var input usecase.CreateRequestInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request input")
	}

	input.RequesterUID = middleware.UID(c)

	request, err := h.uc.CreateRequest(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Request submitted successfully")
}

// Get returns one blood request by identifier.
func (h *RequestHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request identifier")
	}

	request, err := h.uc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "")
}

// requestListQuery carries the listing filters.
type requestListQuery struct {
	Status     *entity.RequestStatus `query:"status"`
	BloodGroup *entity.BloodGroup    `query:"blood_group"`
	City       *string               `query:"city"`
	Limit      int                   `query:"limit"`
	Offset     int                   `query:"offset"`
}

// List returns blood requests matching the filter.
func (h *RequestHandler) List(c echo.Context) error {
	var query requestListQuery
	if err := c.Bind(&query); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid list query")
	}

	requests, err := h.uc.ListRequests(c.Request().Context(), repository.RequestListFilter{
		Status:     query.Status,
		BloodGroup: query.BloodGroup,
		City:       query.City,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "")
}

// ListMine returns the authenticated account's own requests.
func (h *RequestHandler) ListMine(c echo.Context) error {
	uid := middleware.UID(c)

	requests, err := h.uc.ListRequests(c.Request().Context(), repository.RequestListFilter{
		RequesterUID: &uid,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "")
}

// changeStatusRequest carries the target lifecycle state.
type changeStatusRequest struct {
	Status entity.RequestStatus `json:"status"`
}

// ChangeStatus applies one step of the request lifecycle. Admin only.
func (h *RequestHandler) ChangeStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request identifier")
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	request, err := h.uc.ChangeStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Status changed successfully")
}
