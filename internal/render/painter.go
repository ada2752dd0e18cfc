package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"
)

// FrameStats describes the most recently presented frame.
type FrameStats struct {
	RenderTime time.Duration
	FPS        int
	Width      int
	Height     int
	Cols       int
}

// Painter paints a scene onto a surface, re-deriving the grid metrics and
// re-assigning the scene rectangle whenever the surface size changes.
type Painter struct {
	Engine     *Engine
	Background color.Color

	// OnFrame, when set, receives stats after every presented frame.
	OnFrame func(FrameStats)

	now func() time.Time

	scene   Scene
	width   int
	height  int
	metrics Metrics

	frames   int
	fps      int
	fpsStart time.Time
}

func NewPainter(engine *Engine) *Painter {
	return &Painter{Engine: engine, Background: Background, now: time.Now}
}

// Metrics returns the grid used by the last paint.
func (p *Painter) Metrics() Metrics { return p.metrics }

// Paint draws one full frame. It reports false, without requesting a buffer,
// when the surface currently has no area.
func (p *Painter) Paint(s Surface, scene Scene) (bool, error) {
	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return false, nil
	}
	start := p.now()

	if width != p.width || height != p.height || scene != p.scene {
		m, err := p.Engine.Metrics(width, height)
		if err != nil {
			return false, err
		}
		p.metrics = m
		p.width, p.height = width, height
		p.scene = scene
		scene.SetRect(0, 0, m.Cols, m.Rows)
	}

	buf, err := s.Buffer(width, height)
	if err != nil {
		return false, fmt.Errorf("framebuffer %dx%d: %w", width, height, err)
	}
	bg := p.Background
	if bg == nil {
		bg = Background
	}
	draw.Draw(buf, buf.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	scene.Draw(buf, p.Engine, p.metrics)

	if err := s.Present(); err != nil {
		return true, fmt.Errorf("present: %w", err)
	}
	p.record(start)
	return true, nil
}

func (p *Painter) record(start time.Time) {
	end := p.now()
	if p.fpsStart.IsZero() {
		p.fpsStart = start
	}
	p.frames++
	if elapsed := end.Sub(p.fpsStart); elapsed >= time.Second {
		p.fps = int(math.Round(float64(p.frames) / elapsed.Seconds()))
		p.frames = 0
		p.fpsStart = end
	}
	if p.OnFrame != nil {
		p.OnFrame(FrameStats{
			RenderTime: end.Sub(start),
			FPS:        p.fps,
			Width:      p.width,
			Height:     p.height,
			Cols:       p.metrics.Cols,
		})
	}
}
