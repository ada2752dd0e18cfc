package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"unicode/utf8"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// GridRows is the fixed number of character rows; columns are derived from the width.
const GridRows = 45

const (
	// fontScale is the glyph size relative to the cell height.
	fontScale = 0.90
	// baselineRatio places the baseline within a cell, measured from its top.
	baselineRatio = 0.82
	// referenceGlyph sets the cell width.
	referenceGlyph = 'M'
)

// ErrZeroArea is returned when the framebuffer has no pixels.
var ErrZeroArea = errors.New("zero-area framebuffer")

// Metrics maps the virtual character grid onto framebuffer pixels.
type Metrics struct {
	CharWidth  float64
	CharHeight float64
	FontSize   float64
	Cols       int
	Rows       int
}

// Engine rasterizes glyphs on a fixed-pitch character grid.
type Engine struct {
	font Font
}

func NewEngine(f Font) *Engine { return &Engine{font: f} }

// Metrics derives the grid for a framebuffer of width x height pixels.
// It is deterministic for a given size.
func (e *Engine) Metrics(width, height int) (Metrics, error) {
	if width <= 0 || height <= 0 {
		return Metrics{}, ErrZeroArea
	}
	charHeight := float64(height) / GridRows
	fontSize := charHeight * fontScale
	face, err := e.font.Face(fontSize)
	if err != nil {
		return Metrics{}, fmt.Errorf("face at %.2fpx: %w", fontSize, err)
	}
	advance, ok := face.GlyphAdvance(referenceGlyph)
	if !ok || advance <= 0 {
		return Metrics{}, fmt.Errorf("font has no advance for %q", referenceGlyph)
	}
	charWidth := fixedToFloat(advance)
	cols := int(float64(width) / charWidth)
	if cols < 1 {
		cols = 1
	}
	return Metrics{
		CharWidth:  charWidth,
		CharHeight: charHeight,
		FontSize:   fontSize,
		Cols:       cols,
		Rows:       GridRows,
	}, nil
}

// DrawString draws text at a grid cell without a background.
func (e *Engine) DrawString(dst *image.RGBA, m Metrics, text string, col, row int, fg color.Color) {
	e.DrawStringEx(dst, m, text, col, row, fg, nil, 1)
}

// DrawStringEx draws text at a grid cell. A non-nil bg fills the cells the text
// spans before any glyph is drawn. scale multiplies both the glyph size and the
// per-character advance.
func (e *Engine) DrawStringEx(dst *image.RGBA, m Metrics, text string, col, row int, fg, bg color.Color, scale int) {
	if text == "" || dst == nil {
		return
	}
	if scale < 1 {
		scale = 1
	}
	charW := m.CharWidth * float64(scale)
	charH := m.CharHeight * float64(scale)
	x := float64(col) * m.CharWidth
	y := float64(row) * m.CharHeight

	if bg != nil {
		span := float64(utf8.RuneCountInString(text)) * charW
		fillPixels(dst, pixelRect(x, y, span, charH), bg)
	}

	face, err := e.font.Face(m.FontSize * float64(scale))
	if err != nil {
		return
	}
	src := color.RGBAModel.Convert(fg).(color.RGBA)
	baseline := y + charH*baselineRatio
	for _, r := range text {
		if r != ' ' {
			dot := fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)}
			if dr, mask, maskp, _, ok := face.Glyph(dot, r); ok && mask != nil {
				compositeGlyph(dst, dr, mask, maskp, src)
			}
		}
		x += charW
	}
}

// DrawBox draws a single-line border with box-drawing glyphs.
// Boxes smaller than 2x2 cells are not drawn.
func (e *Engine) DrawBox(dst *image.RGBA, m Metrics, x, y, w, h int, fg color.Color) {
	if w < 2 || h < 2 {
		return
	}
	e.DrawString(dst, m, "┌", x, y, fg)
	e.DrawString(dst, m, "┐", x+w-1, y, fg)
	e.DrawString(dst, m, "└", x, y+h-1, fg)
	e.DrawString(dst, m, "┘", x+w-1, y+h-1, fg)

	edge := strings.Repeat("─", w-2)
	e.DrawString(dst, m, edge, x+1, y, fg)
	e.DrawString(dst, m, edge, x+1, y+h-1, fg)
	for i := 1; i < h-1; i++ {
		e.DrawString(dst, m, "│", x, y+i, fg)
		e.DrawString(dst, m, "│", x+w-1, y+i, fg)
	}
}

// FillCells paints a solid block of w x h cells.
func (e *Engine) FillCells(dst *image.RGBA, m Metrics, x, y, w, h int, c color.Color) {
	if w <= 0 || h <= 0 || dst == nil {
		return
	}
	fillPixels(dst, CellRect(m, x, y, w, h), c)
}

// DrawImage scales img to fit inside the w x h cell block, preserving aspect
// ratio and centering it, and composites it over the existing pixels.
func (e *Engine) DrawImage(dst *image.RGBA, m Metrics, img image.Image, x, y, w, h int) {
	if img == nil || dst == nil || w <= 0 || h <= 0 {
		return
	}
	target := CellRect(m, x, y, w, h)
	fit := FitRect(img.Bounds(), target)
	if fit.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, fit, img, img.Bounds(), xdraw.Over, nil)
}

// CellRect converts a block of cells into the pixel rectangle it covers.
func CellRect(m Metrics, x, y, w, h int) image.Rectangle {
	return pixelRect(float64(x)*m.CharWidth, float64(y)*m.CharHeight, float64(w)*m.CharWidth, float64(h)*m.CharHeight)
}

// FitRect returns the largest rectangle with src's aspect ratio centered in target.
func FitRect(src, target image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	tw, th := target.Dx(), target.Dy()
	if sw <= 0 || sh <= 0 || tw <= 0 || th <= 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(tw)/float64(sw), float64(th)/float64(sh))
	w := int(float64(sw) * scale)
	h := int(float64(sh) * scale)
	x := target.Min.X + (tw-w)/2
	y := target.Min.Y + (th-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+w)), int(math.Round(y+h)))
}

func fillPixels(dst *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
