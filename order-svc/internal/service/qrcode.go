package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// PickupQRGenerator encodes a link to the order so staff can scan it at
// pickup.
type PickupQRGenerator struct {
	BaseURL string
}

func (g PickupQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(strings.TrimRight(g.BaseURL, "/")+"/api/orders/"+orderID, qrcode.Medium, 256)
}
