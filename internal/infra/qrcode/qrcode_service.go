// Package qrcode renders check-in payloads as QR code images.
package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"

	"lifeline/config"
	"lifeline/internal/domain/service"
)

type qrcodeService struct {
	defaultSize          int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := 256
	levelName := "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.ErrorCorrectionLevel != "" {
			levelName = cfg.QRCode.ErrorCorrectionLevel
		}
	}

	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		defaultSize:          size,
		errorCorrectionLevel: level,
	}
}

// GeneratePNG encodes the content as a PNG image of the given pixel size.
func (s *qrcodeService) GeneratePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = s.defaultSize
	}

	qrCode, err := qrcode.New(content, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
