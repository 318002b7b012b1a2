package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lifeline/config"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// sessionClaims is the registered claim set plus application claims.
type sessionClaims struct {
	Roles []string `json:"roles,omitempty"`
	Type  string   `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     accessTokenTTL,
		refreshTTL:    refreshTokenTTL,
	}, nil
}

// GenerateTokenPair creates a new access token and refresh token for a given identity and roles.
func (s *jwtService) GenerateTokenPair(uid string, roles []string) (*service.TokenPair, error) {
	now := time.Now()

	accessToken, err := s.generateToken(uid, roles, now, s.accessTTL, s.accessSecret, service.AccessToken)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}

	// Roles are only carried by the access token for stateless authorization.
	refreshToken, err := s.generateToken(uid, nil, now, s.refreshTTL, s.refreshSecret, service.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "sign refresh token")
	}

	return &service.TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessTTL),
		RefreshTokenExpiresAt: now.Add(s.refreshTTL),
	}, nil
}

// ValidateToken verifies a token issued by this service. The token type is
// read from the unverified payload first so the matching secret can be
// selected, then the signature and expiry are checked.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	unverified := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, unverified); err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	var secret string
	switch service.TokenType(unverified.Type) {
	case service.AccessToken:
		secret = s.accessSecret
	case service.RefreshToken:
		secret = s.refreshSecret
	default:
		return nil, errors.Errorf("unknown token type: %s", unverified.Type)
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "token validation failed")
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	issuedAt := time.Time{}
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &service.Claims{
		UID:      claims.Subject,
		Roles:    claims.Roles,
		Type:     service.TokenType(claims.Type),
		IssuedAt: issuedAt,
	}, nil
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(uid string, roles []string, now time.Time, ttl time.Duration, secret string, tokenType service.TokenType) (string, error) {
	claims := &sessionClaims{
		Roles: roles,
		Type:  string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
