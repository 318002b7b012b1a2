package usecase

import (
	"context"

	"lifeline/internal/domain/entity"
	"lifeline/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      entity.Role `json:"role"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordInput defines the data required to change a password.
// UID and TokenIssuedAt are taken from the authenticated session, never
// from the request body.
type ChangePasswordInput struct {
	UID             string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	// TokenIssuedAt is when the presented session token was issued. Sessions
	// older than the recent-login window are rejected.
	TokenIssuedAt int64 `json:"-"`
}

// DeleteAccountInput defines the data required to delete an account.
type DeleteAccountInput struct {
	UID           string `json:"-"`
	Password      string `json:"password"`
	TokenIssuedAt int64  `json:"-"`
}

// --- Output DTOs ---

// SessionOutput returns the tokens and resolved session after sign-in.
// Profile is nil for allow-list administrators who carry no profile row.
type SessionOutput struct {
	Tokens  *service.TokenPair `json:"tokens"`
	Profile *entity.Profile    `json:"profile,omitempty"`
	IsAdmin bool               `json:"is_admin"`
}

// UserUsecase defines account and session business operations.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*SessionOutput, error)
	Login(ctx context.Context, input LoginInput) (*SessionOutput, error)
	// RefreshSession rotates the refresh token and issues a new pair.
	RefreshSession(ctx context.Context, refreshToken string) (*SessionOutput, error)
	// Logout revokes the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error
	// SignInWithIDToken verifies a provider ID token and resolves the session,
	// creating the profile on first sign-in.
	SignInWithIDToken(ctx context.Context, idToken string) (*SessionOutput, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	// DeleteAccount removes the credential and revokes all sessions. The
	// profile row is retained.
	DeleteAccount(ctx context.Context, input DeleteAccountInput) error
}
