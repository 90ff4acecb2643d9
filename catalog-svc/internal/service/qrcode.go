package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(path string) ([]byte, error)
}

// DefaultQRGenerator encodes BaseURL+path as a 256px PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(path string) ([]byte, error) {
	link := strings.TrimRight(g.BaseURL, "/") + path
	return qrcode.Encode(link, qrcode.Medium, 256)
}
