package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/domain/entity"
	mockusecase "lifeline/internal/mocks/usecase"
)

func TestCampaignHandler_CheckInQR_ServesPNG(t *testing.T) {
	uc := mockusecase.NewMockCampaignUsecase(t)
	h := NewCampaignHandler(uc, slog.Default())

	campaignID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}
	uc.On("CheckInQR", mock.Anything, campaignID, "donor-1").Return(png, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/campaigns/"+campaignID.String()+"/qr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(campaignID.String())
	c.Set(middleware.ContextKeyUID, "donor-1")

	require.NoError(t, h.CheckInQR(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}

func TestCampaignHandler_CheckInQR_RejectsBadID(t *testing.T) {
	uc := mockusecase.NewMockCampaignUsecase(t)
	h := NewCampaignHandler(uc, slog.Default())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/campaigns/not-a-uuid/qr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	c.Set(middleware.ContextKeyUID, "donor-1")

	require.NoError(t, h.CheckInQR(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	uc.AssertNotCalled(t, "CheckInQR", mock.Anything, mock.Anything, mock.Anything)
}

func TestCampaignHandler_Register(t *testing.T) {
	uc := mockusecase.NewMockCampaignUsecase(t)
	h := NewCampaignHandler(uc, slog.Default())

	campaignID := uuid.New()
	uc.On("RegisterDonor", mock.Anything, campaignID, "donor-1").
		Return(&entity.CampaignRegistration{CampaignID: campaignID, DonorUID: "donor-1"}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/campaigns/"+campaignID.String()+"/register", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(campaignID.String())
	c.Set(middleware.ContextKeyUID, "donor-1")

	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"donor_uid":"donor-1"`)
}
