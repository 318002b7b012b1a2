// Package firebase verifies identities asserted by Firebase Authentication.
package firebase

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"lifeline/config"
	"lifeline/internal/domain/service"
	"lifeline/internal/errors"
)

// verifier implements service.IdentityVerifier on the Firebase Admin SDK.
type verifier struct {
	client *fbauth.Client
}

// NewIdentityVerifier initializes the Firebase app and returns a verifier.
// Returns nil when Firebase is not configured so callers can treat external
// sign-in as disabled.
func NewIdentityVerifier(ctx context.Context, cfg *config.Config) (service.IdentityVerifier, error) {
	if cfg.Firebase == nil || cfg.Firebase.ProjectID == "" {
		return nil, nil
	}

	// The Admin SDK switches to the emulator through this env var.
	if cfg.Firebase.EmulatorHost != "" {
		if err := os.Setenv("FIREBASE_AUTH_EMULATOR_HOST", cfg.Firebase.EmulatorHost); err != nil {
			return nil, errors.Wrap(err, "set firebase emulator host")
		}
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initialize firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initialize firebase auth client")
	}

	return &verifier{client: client}, nil
}

// VerifyIDToken checks the token signature and audience against the project
// and returns the asserted identity.
func (v *verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.ExternalIdentity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify firebase id token")
	}

	identity := &service.ExternalIdentity{UID: token.UID}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.DisplayName = name
	}

	return identity, nil
}
