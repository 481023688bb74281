package voucher

import (
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/models"
)

const (
	payloadPrefix = "JOURNEYSPHERE"
	defaultSize   = 256
)

type Generator struct {
	Size     int
	Recovery qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{Size: defaultSize, Recovery: qrcode.Medium}
}

// Payload is the text encoded in a booking's QR code.
func Payload(b models.Booking) string {
	return strings.Join([]string{
		payloadPrefix,
		b.ID,
		strings.ReplaceAll(b.PackageTitle, "|", "/"),
		b.StartDate.UTC().Format("2006-01-02"),
		string(b.PaymentStatus),
	}, "|")
}

// PNG renders the booking voucher as a QR code image.
func (g *Generator) PNG(b models.Booking) ([]byte, error) {
	return qrcode.Encode(Payload(b), g.Recovery, g.Size)
}
