package render

import (
	"fmt"
	"image"

	"github.com/skip2/go-qrcode"
)

// GenerateQRCodeImage encodes payload as a borderless, cyan-on-panel QR code
// sizePx pixels square. An empty payload yields no image and no error.
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, nil
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("qr code size %d: %w", sizePx, ErrZeroArea)
	}
	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	code.DisableBorder = true
	code.ForegroundColor = Cyan
	code.BackgroundColor = PanelShade
	return code.Image(sizePx), nil
}
