package service

import "context"

// ExternalIdentity is the verified identity asserted by the external auth
// provider. UID is the stable identifier profiles are keyed by.
type ExternalIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
}

// IdentityVerifier validates provider-issued ID tokens.
type IdentityVerifier interface {
	// VerifyIDToken checks the token signature and audience and returns the
	// identity it asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}
