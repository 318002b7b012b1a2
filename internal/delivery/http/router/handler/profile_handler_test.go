package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lifeline/internal/delivery/http/middleware"
	"lifeline/internal/domain/entity"
	mockusecase "lifeline/internal/mocks/usecase"
	"lifeline/internal/usecase"
)

func TestProfileHandler_GetMe(t *testing.T) {
	uc := mockusecase.NewMockProfileUsecase(t)
	h := NewProfileHandler(uc, slog.Default())

	uc.On("GetProfile", mock.Anything, "donor-1").
		Return(&entity.Profile{UID: "donor-1", Email: "donor@example.com", Role: entity.RoleDonor}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUID, "donor-1")

	require.NoError(t, h.GetMe(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"uid":"donor-1"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestProfileHandler_UpdateMe_UsesSessionUID(t *testing.T) {
	uc := mockusecase.NewMockProfileUsecase(t)
	h := NewProfileHandler(uc, slog.Default())

	// The body must not be able to redirect the update to another account.
	uc.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(input usecase.UpdateProfileInput) bool {
		return input.UID == "donor-1" && input.FirstName != nil && *input.FirstName == "Amina"
	})).Return(&entity.Profile{UID: "donor-1", FirstName: "Amina"}, nil)

	e := echo.New()
	body := `{"first_name":"Amina"}`
	req := httptest.NewRequest(http.MethodPut, "/me/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUID, "donor-1")

	require.NoError(t, h.UpdateMe(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"first_name":"Amina"`)
}

func TestProfileHandler_ChangeRole(t *testing.T) {
	uc := mockusecase.NewMockProfileUsecase(t)
	h := NewProfileHandler(uc, slog.Default())

	uc.On("ChangeRole", mock.Anything, "donor-1", entity.RoleRecipient).
		Return(&entity.Profile{UID: "donor-1", Role: entity.RoleRecipient}, nil)

	e := echo.New()
	body := `{"role":"recipient"}`
	req := httptest.NewRequest(http.MethodPut, "/admin/users/donor-1/role", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("uid")
	c.SetParamValues("donor-1")

	require.NoError(t, h.ChangeRole(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"recipient"`)
}
