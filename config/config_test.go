package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  env: test
  serviceName: lifeline
  debug: true
  log:
    pretty: true
    level: debug
http:
  port: 8080
  timeouts:
    readTimeout: 5s
    writeTimeout: 10s
auth:
  bcryptCost: 10
  adminEmails:
    - admin@lifeline.example
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))
	t.Chdir(dir)

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "lifeline", cfg.Env.ServiceName)
	assert.True(t, cfg.Env.Debug)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, []string{"admin@lifeline.example"}, cfg.Auth.AdminEmails)
}

func TestLoadWithEnv_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
http:
  port: 8080
secretKey:
  access: from-file
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), content, 0o600))
	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.SecretKey.Access)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
		},
		"secretKey": map[string]any{
			"access": "x",
		},
	}

	assert.Equal(t, "postgres.sslMode", canonicalizeEnvKey("POSTGRES_SSLMODE", existing))
	assert.Equal(t, "secretKey.access", canonicalizeEnvKey("SECRETKEY_ACCESS", existing))
	// Unknown segments pass through lowercased.
	assert.Equal(t, "unknown.key", canonicalizeEnvKey("UNKNOWN_KEY", existing))
}

func TestValidate_EnumeratesAllMissing(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
	assert.Contains(t, err.Error(), "secretKey.access")
	assert.Contains(t, err.Error(), "secretKey.refresh")
	assert.Contains(t, err.Error(), "firebase.projectId")
}

func TestValidate_OptionalSectionsRequireFieldsWhenPresent(t *testing.T) {
	cfg := &Config{
		Geocoding: &GeocodingConfig{},
		PubSub:    &PubSubConfig{Provider: "google"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocoding.endpoint")
	assert.Contains(t, err.Error(), "geocoding.apiKey")
	assert.Contains(t, err.Error(), "pubsub.projectId")
	assert.Contains(t, err.Error(), "pubsub.topicId")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{QRCode: &QRCodeConfig{}}
	cfg.applyDefaults()

	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 5*time.Minute, cfg.Auth.RecentLoginWindow)
	assert.Equal(t, 256, cfg.QRCode.Size)
}
