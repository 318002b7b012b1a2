package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/config"
	"lifeline/internal/domain/service"
)

func newTestJWTService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_MissingSecrets(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService(t)

	pair, err := svc.GenerateTokenPair("uid-123", []string{"donor"})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateToken_AccessToken(t *testing.T) {
	svc := newTestJWTService(t)

	pair, err := svc.GenerateTokenPair("uid-123", []string{"donor", "admin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "uid-123", claims.UID)
	assert.Equal(t, []string{"donor", "admin"}, claims.Roles)
	assert.Equal(t, service.AccessToken, claims.Type)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestValidateToken_RefreshTokenCarriesNoRoles(t *testing.T) {
	svc := newTestJWTService(t)

	pair, err := svc.GenerateTokenPair("uid-123", []string{"donor"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, "uid-123", claims.UID)
	assert.Empty(t, claims.Roles)
	assert.Equal(t, service.RefreshToken, claims.Type)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		Type: string(service.AccessToken),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forgedString, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forgedString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token validation failed")
}

func TestValidateToken_UnknownType(t *testing.T) {
	svc := newTestJWTService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		Type: "weird",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte("test-access-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown token type")
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		Type: string(service.AccessToken),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenString, err := token.SignedString([]byte("test-access-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	require.Error(t, err)
}
