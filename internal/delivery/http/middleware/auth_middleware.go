// Package middleware provides HTTP middleware components.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"lifeline/internal/delivery/http/response"
	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/service"
)

// Context keys set by Authenticate.
const (
	// ContextKeyUID is the authenticated account identifier.
	ContextKeyUID = "uid"
	// ContextKeyRoles is the []string of session roles.
	ContextKeyRoles = "roles"
	// ContextKeyTokenIssuedAt is the Unix time the access token was issued.
	// Sensitive operations compare it against the recent-login window.
	ContextKeyTokenIssuedAt = "token_issued_at"
)

// AuthMiddleware guards routes with access-token authentication.
type AuthMiddleware struct {
	tokenService service.TokenService
}

// AuthMiddlewareParams defines the dependencies for AuthMiddleware.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{tokenService: params.TokenService}
}

// Authenticate validates the Bearer access token and stores the session
// identity on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Missing authorization header")
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid authorization header format")
		}

		claims, err := m.tokenService.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Refresh tokens only pass the refresh endpoint, never guarded routes.
		if claims.Type != service.AccessToken {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token is not an access token")
		}

		c.Set(ContextKeyUID, claims.UID)
		c.Set(ContextKeyRoles, claims.Roles)
		c.Set(ContextKeyTokenIssuedAt, claims.IssuedAt.Unix())

		return next(c)
	}
}

// RequireRole restricts a route to sessions carrying the role.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, ok := c.Get(ContextKeyRoles).([]string)
			if !ok {
				return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
			}

			for _, r := range roles {
				if r == string(role) {
					return next(c)
				}
			}

			return response.Forbidden(c, "FORBIDDEN", "Insufficient permissions")
		}
	}
}

// RequireAdmin restricts a route to administrative sessions.
func (m *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return m.RequireRole(entity.RoleAdmin)
}

// UID returns the authenticated account identifier set by Authenticate.
func UID(c echo.Context) string {
	uid, _ := c.Get(ContextKeyUID).(string)

	return uid
}

// TokenIssuedAt returns the Unix issue time of the presented access token.
func TokenIssuedAt(c echo.Context) int64 {
	issuedAt, _ := c.Get(ContextKeyTokenIssuedAt).(int64)

	return issuedAt
}
