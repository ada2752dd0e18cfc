package render

import "image/color"

// Palette shared by every widget.
var (
	Background  = color.RGBA{R: 0x00, G: 0x0a, B: 0x05, A: 0xff}
	PanelShade  = color.RGBA{R: 0x05, G: 0x0f, B: 0x05, A: 0xff}
	StatusShade = color.RGBA{R: 0x14, G: 0x14, B: 0x14, A: 0xff}
	Highlight   = color.RGBA{R: 0x00, G: 0x3c, B: 0x3c, A: 0xff}

	Cyan  = color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff}
	Green = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Grey  = color.RGBA{R: 0xb4, G: 0xb4, B: 0xb4, A: 0xff}
	Faded = color.RGBA{R: 0x64, G: 0x64, B: 0x64, A: 0xff}
)
