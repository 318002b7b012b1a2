package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/config"
)

func TestBcryptHasher(t *testing.T) {
	cfg := &config.Config{}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, hasher.Verify(hash, "s3cret-password"))
	assert.Error(t, hasher.Verify(hash, "wrong-password"))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}}
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("quick")
	require.NoError(t, err)
	assert.NoError(t, hasher.Verify(hash, "quick"))
}
