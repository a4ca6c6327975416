package ticket

import (
	qrcode "github.com/skip2/go-qrcode"

	"parkportal/internal/constants"
)

// RenderPNG encodes the ticket's validation URL as a PNG QR image of the
// given pixel size, clamped to a sane range.
func RenderPNG(publicURL string, t Ticket, size int) ([]byte, error) {
	if size < constants.QRSizeMin {
		size = constants.QRSizeMin
	}
	if size > constants.QRSizeMax {
		size = constants.QRSizeMax
	}
	return qrcode.Encode(BuildURL(publicURL, t), qrcode.Medium, size)
}
