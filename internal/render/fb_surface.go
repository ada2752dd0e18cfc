package render

import (
	"errors"
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

// FBSurface presents frames on a Linux framebuffer device such as /dev/fb0.
// Frames are rendered into an offscreen RGBA buffer at the device's native
// resolution and copied to the device on Present.
type FBSurface struct {
	dev    *fb.Device
	canvas *image.RGBA
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// OpenFB opens the framebuffer device at path.
func OpenFB(path string) (*FBSurface, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return &FBSurface{dev: dev}, nil
}

func (s *FBSurface) Size() (int, int) {
	if s.dev == nil {
		return 0, 0
	}
	bounds := s.dev.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func (s *FBSurface) Buffer(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroArea
	}
	if s.canvas == nil || s.canvas.Bounds().Dx() != width || s.canvas.Bounds().Dy() != height {
		s.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
		if s.Logger != nil {
			s.Logger.Infof("fb", "canvas allocated, %dx%d", width, height)
		}
	}
	return s.canvas, nil
}

// Present copies the canvas onto the device, one pixel at a time through the
// device's own color model.
func (s *FBSurface) Present() error {
	if s.dev == nil {
		return errors.New("framebuffer closed")
	}
	if s.canvas == nil {
		return nil
	}
	bounds := s.dev.Bounds()
	width := min(bounds.Dx(), s.canvas.Bounds().Dx())
	height := min(bounds.Dy(), s.canvas.Bounds().Dy())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := s.canvas.RGBAAt(x, y)
			s.dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
	return nil
}

func (s *FBSurface) Close() error {
	if s.dev == nil {
		return nil
	}
	s.dev.Close()
	s.dev = nil
	return nil
}
