package render

import (
	"image"
	"testing"
	"time"
)

type fakeSurface struct {
	w, h     int
	buf      *image.RGBA
	buffers  int
	presents int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Buffer(w, h int) (*image.RGBA, error) {
	s.buffers++
	if s.buf == nil || s.buf.Bounds().Dx() != w || s.buf.Bounds().Dy() != h {
		s.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return s.buf, nil
}

func (s *fakeSurface) Present() error {
	s.presents++
	return nil
}

type fakeScene struct {
	rects []sceneRect
	draws int
}

type sceneRect struct{ X, Y, W, H int }

func (s *fakeScene) SetRect(x, y, w, h int) { s.rects = append(s.rects, sceneRect{x, y, w, h}) }

func (s *fakeScene) Draw(dst *image.RGBA, e *Engine, m Metrics) {
	s.draws++
	e.DrawString(dst, m, "X", 0, 0, White)
}

func TestPainterSkipsZeroArea(t *testing.T) {
	p := NewPainter(testEngine(t, EngineOpenType))
	surface := &fakeSurface{}
	scene := &fakeScene{}

	painted, err := p.Paint(surface, scene)
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if painted {
		t.Error("Paint reported a frame for a zero-area surface")
	}
	if surface.buffers != 0 || surface.presents != 0 || scene.draws != 0 || len(scene.rects) != 0 {
		t.Errorf("zero-area paint touched the surface: %+v %+v", surface, scene)
	}
}

func TestPainterResize(t *testing.T) {
	p := NewPainter(testEngine(t, EngineOpenType))
	surface := &fakeSurface{w: 640, h: 450}
	scene := &fakeScene{}

	for i := 0; i < 3; i++ {
		if painted, err := p.Paint(surface, scene); err != nil || !painted {
			t.Fatalf("Paint #%d = %v, %v", i, painted, err)
		}
	}
	if len(scene.rects) != 1 {
		t.Fatalf("SetRect calls = %d, want 1 for a stable size", len(scene.rects))
	}
	first := scene.rects[0]
	if first.X != 0 || first.Y != 0 || first.H != GridRows || first.W != p.Metrics().Cols {
		t.Errorf("root rect = %+v, want 0,0,%d,%d", first, p.Metrics().Cols, GridRows)
	}

	// Same height, twice the width: rows keep their size, columns double.
	surface.w, surface.h = 1280, 450
	if _, err := p.Paint(surface, scene); err != nil {
		t.Fatal(err)
	}
	if len(scene.rects) != 2 {
		t.Fatalf("SetRect calls = %d after resize, want 2", len(scene.rects))
	}
	m := p.Metrics()
	if want := int(float64(surface.w) / m.CharWidth); m.Cols != want || scene.rects[1].W != want {
		t.Errorf("cols = %d, rect width %d, want %d", m.Cols, scene.rects[1].W, want)
	}
	if scene.rects[1].W <= first.W {
		t.Errorf("wider surface yielded %d cols, previously %d", scene.rects[1].W, first.W)
	}
	if surface.presents != 4 || scene.draws != 4 {
		t.Errorf("presents=%d draws=%d, want 4 each", surface.presents, scene.draws)
	}
	if got := surface.buf.RGBAAt(surface.w-1, surface.h-1); got != Background {
		t.Errorf("background pixel = %v, want %v", got, Background)
	}
}

func TestPainterFrameStats(t *testing.T) {
	p := NewPainter(testEngine(t, EngineOpenType))
	clock := time.Unix(0, 0)
	p.now = func() time.Time {
		clock = clock.Add(100 * time.Millisecond)
		return clock
	}
	var last FrameStats
	p.OnFrame = func(s FrameStats) { last = s }

	surface := &fakeSurface{w: 320, h: 225}
	for i := 0; i < 10; i++ {
		if _, err := p.Paint(surface, &fakeScene{}); err != nil {
			t.Fatal(err)
		}
	}
	if last.RenderTime != 100*time.Millisecond {
		t.Errorf("RenderTime = %v, want 100ms", last.RenderTime)
	}
	if last.FPS != 5 {
		t.Errorf("FPS = %d, want 5", last.FPS)
	}
	if last.Width != 320 || last.Height != 225 || last.Cols != p.Metrics().Cols {
		t.Errorf("stats = %+v", last)
	}
}
