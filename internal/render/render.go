package render

import "image"

// Surface is a framebuffer provider: something that owns pixels on a screen.
type Surface interface {
	// Size returns the current pixel dimensions. Either may be zero, for
	// example while a window is minimized.
	Size() (width int, height int)

	// Buffer returns a writable RGBA buffer of exactly width x height pixels,
	// reallocating it when the size changed since the previous call.
	Buffer(width, height int) (*image.RGBA, error)

	// Present commits the buffer to the screen.
	Present() error
}

// Scene is the root of a widget tree as seen by the painter.
type Scene interface {
	SetRect(x, y, w, h int)
	Draw(dst *image.RGBA, e *Engine, m Metrics)
}

// NoopSurface has no pixels; painting onto it is always skipped.
type NoopSurface struct{}

func (NoopSurface) Size() (int, int)                             { return 0, 0 }
func (NoopSurface) Buffer(width, height int) (*image.RGBA, error) { return nil, ErrZeroArea }
func (NoopSurface) Present() error                               { return nil }
