package render

import (
	"errors"
	"testing"
)

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("https://example.org/games/snes/smw", 128)
	if err != nil {
		t.Fatalf("GenerateQRCodeImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("bounds = %v, want 128x128", b)
	}
	var fg, bg int
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			switch img.At(x, y) {
			case Cyan:
				fg++
			case PanelShade:
				bg++
			}
		}
	}
	if fg == 0 || bg == 0 {
		t.Errorf("foreground=%d background=%d pixels, want both palette colours", fg, bg)
	}
}

func TestGenerateQRCodeImageEmpty(t *testing.T) {
	img, err := GenerateQRCodeImage("", 128)
	if img != nil || err != nil {
		t.Errorf("empty payload = %v, %v", img, err)
	}
	if _, err := GenerateQRCodeImage("x", 0); !errors.Is(err, ErrZeroArea) {
		t.Errorf("zero size err = %v", err)
	}
}
