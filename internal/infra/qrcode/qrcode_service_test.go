package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline/config"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func TestGeneratePNG(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	png, err := svc.GeneratePNG("lifeline:campaign:abc123", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG image")
}

func TestGeneratePNG_DefaultSize(t *testing.T) {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: 64, ErrorCorrectionLevel: "H"}}
	svc := NewQRCodeService(cfg)

	png, err := svc.GeneratePNG("lifeline:campaign:abc123", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestGeneratePNG_EmptyContent(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	_, err := svc.GeneratePNG("", 128)
	require.Error(t, err)
}
