package service

// QRCodeService renders check-in payloads as QR code images.
type QRCodeService interface {
	// GeneratePNG encodes the content as a PNG of the given pixel size.
	GeneratePNG(content string, size int) ([]byte, error)
}
