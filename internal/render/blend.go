package render

import (
	"image"
	"image/color"
)

// coverageThreshold is the highest coverage (0-255) that is still skipped.
// Dropping faint edge pixels keeps glyphs crisp instead of fuzzy.
const coverageThreshold = 51

func compositeGlyph(dst *image.RGBA, dr image.Rectangle, mask image.Image, maskp image.Point, fg color.RGBA) {
	clip := dr.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	alpha, _ := mask.(*image.Alpha)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		my := maskp.Y + (y - dr.Min.Y)
		for x := clip.Min.X; x < clip.Max.X; x++ {
			mx := maskp.X + (x - dr.Min.X)
			var coverage uint8
			if alpha != nil {
				coverage = alpha.Pix[alpha.PixOffset(mx, my)]
			} else {
				_, _, _, a := mask.At(mx, my).RGBA()
				coverage = uint8(a >> 8)
			}
			if coverage <= coverageThreshold {
				continue
			}
			i := dst.PixOffset(x, y)
			Blend(dst.Pix[i:i+4:i+4], fg, coverage)
		}
	}
}

// Blend composites src over the RGBA pixel px with the given coverage.
// Full coverage writes src opaquely; partial coverage uses integer source-over
// blending in all four channels.
func Blend(px []uint8, src color.RGBA, coverage uint8) {
	if coverage == 0xff {
		px[0], px[1], px[2], px[3] = src.R, src.G, src.B, 0xff
		return
	}
	a := uint32(coverage)
	inv := 0xff - a
	px[0] = uint8((uint32(src.R)*a + uint32(px[0])*inv) / 0xff)
	px[1] = uint8((uint32(src.G)*a + uint32(px[1])*inv) / 0xff)
	px[2] = uint8((uint32(src.B)*a + uint32(px[2])*inv) / 0xff)
	px[3] = uint8((0xff*a + uint32(px[3])*inv) / 0xff)
}
