package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/config"
	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/service"
	"lifeline/internal/infra/auth"
)

func newAuthMiddleware(t *testing.T) (*AuthMiddleware, service.TokenService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenService}), tokenService
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, UID(c))
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _ := newAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_SetsSessionValues(t *testing.T) {
	mw, tokens := newAuthMiddleware(t)

	pair, err := tokens.GenerateTokenPair("donor-1", []string{"donor"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "donor-1", rec.Body.String())
	assert.Equal(t, []string{"donor"}, c.Get(ContextKeyRoles))
	assert.NotZero(t, TokenIssuedAt(c))
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	mw, tokens := newAuthMiddleware(t)

	pair, err := tokens.GenerateTokenPair("donor-1", []string{"donor"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw.Authenticate(okHandler)(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw, tokens := newAuthMiddleware(t)

	e := echo.New()

	cases := []struct {
		name     string
		roles    []string
		wantCode int
	}{
		{name: "admin role passes", roles: []string{"donor", "admin"}, wantCode: http.StatusOK},
		{name: "donor role is rejected", roles: []string{"donor"}, wantCode: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pair, err := tokens.GenerateTokenPair("user-1", tc.roles)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			guarded := mw.Authenticate(mw.RequireRole(entity.RoleAdmin)(okHandler))
			require.NoError(t, guarded(c))

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
