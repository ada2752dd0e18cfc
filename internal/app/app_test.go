package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/rook-computer/osiris/internal/assets"
	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/input"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/state"
	"github.com/rook-computer/osiris/internal/widget"
)

type fakeSurface struct {
	w, h     int
	buf      *image.RGBA
	presents int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Buffer(w, h int) (*image.RGBA, error) {
	if s.buf == nil || s.buf.Bounds().Dx() != w || s.buf.Bounds().Dy() != h {
		s.buf = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return s.buf, nil
}

func (s *fakeSurface) Present() error {
	s.presents++
	return nil
}

type fakeSource struct {
	ch      chan input.Signal
	started bool
	stopped bool
}

func (s *fakeSource) Start(ctx context.Context) error { s.started = true; return nil }
func (s *fakeSource) Stop() error                     { s.stopped = true; return nil }
func (s *fakeSource) Signals() <-chan input.Signal    { return s.ch }

type fakeConsole struct{ acquired, released int }

func (c *fakeConsole) Acquire() error { c.acquired++; return nil }
func (c *fakeConsole) Release() error { c.released++; return nil }

var (
	down   = command.Navigate(command.Down)
	right  = command.Navigate(command.Right)
	choose = command.Act(command.Select)
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	f, err := render.LoadFont(assets.DefaultFont, render.EngineOpenType)
	if err != nil {
		t.Fatalf("LoadFont: %v", err)
	}
	lib := library.New([]library.System{
		{Name: "ARCADE", Games: []library.Game{
			{ID: "pacman", Name: "Pac-Man", Path: "/roms/mame/pacman.zip"},
			{ID: "galaga", Name: "Galaga", Path: "/roms/mame/galaga.zip"},
		}},
		{Name: "NES", Games: []library.Game{{ID: "zelda", Name: "Zelda", Path: "/roms/nes/zelda.nes"}}},
	})
	store := state.NewStore()
	screen := widget.NewScreen(lib, store, widget.ScreenOptions{})
	return New(store, lib, screen, render.NewPainter(render.NewEngine(f)))
}

// press and release use one control per device and command.
func press(dev input.Device, cmd command.Command) input.Signal {
	return input.Signal{Control: control(dev, cmd), Command: cmd, Pressed: true}
}

func release(dev input.Device, cmd command.Command) input.Signal {
	return input.Signal{Control: control(dev, cmd), Command: cmd}
}

func control(dev input.Device, cmd command.Command) input.Control {
	return input.Control{Device: dev, Source: dev.String(), Code: uint32(cmd.Flat())}
}

func TestPaintCoalescesRedraws(t *testing.T) {
	app := newTestApp(t)
	surface := &fakeSurface{w: 320, h: 225}

	if painted, err := app.Paint(surface); err != nil || !painted {
		t.Fatalf("first Paint = %v, %v", painted, err)
	}
	if painted, _ := app.Paint(surface); painted {
		t.Fatal("Paint drew without a redraw request")
	}

	now := time.Unix(0, 0)
	for _, sig := range []input.Signal{
		press(input.Keyboard, down), release(input.Keyboard, down),
		press(input.Keyboard, right), release(input.Keyboard, right),
		press(input.Gamepad, right), release(input.Gamepad, right),
	} {
		app.HandleSignal(sig, now)
	}
	if !app.RedrawPending() {
		t.Fatal("no redraw requested after dispatch")
	}
	for i := 0; i < 3; i++ {
		if _, err := app.Paint(surface); err != nil {
			t.Fatal(err)
		}
	}
	if surface.presents != 2 {
		t.Errorf("presents = %d, want 2", surface.presents)
	}
	if got := app.Screen.Carousel.Selected(); got != 0 {
		t.Errorf("carousel = %d, want 0 after wrapping twice", got)
	}
}

func TestPaintWaitsForArea(t *testing.T) {
	app := newTestApp(t)
	surface := &fakeSurface{}
	if painted, err := app.Paint(surface); err != nil || painted {
		t.Fatalf("Paint on zero area = %v, %v", painted, err)
	}
	if !app.RedrawPending() {
		t.Fatal("zero-area paint consumed the redraw request")
	}
	surface.w, surface.h = 640, 450
	if painted, _ := app.Paint(surface); !painted {
		t.Fatal("Paint did not draw once the surface had area")
	}
	frame := app.Store.Snapshot().Frame
	if frame.Width != 640 || frame.Height != 450 || frame.Cols == 0 {
		t.Errorf("frame info = %+v", frame)
	}
}

func TestLaunchRecorded(t *testing.T) {
	app := newTestApp(t)
	var logs bytes.Buffer
	app.Logger = NewFileLogger(&logs)

	now := time.Unix(0, 0)
	app.HandleSignal(press(input.Keyboard, down), now)
	app.HandleSignal(release(input.Keyboard, down), now)
	app.HandleSignal(press(input.Gamepad, choose), now)
	app.HandleSignal(release(input.Gamepad, choose), now)

	launch := app.Store.Snapshot().Launch
	if launch.Count != 1 || launch.System != "ARCADE" || launch.Game != "Galaga" || launch.GameIndex != 1 {
		t.Errorf("launch = %+v", launch)
	}
	if !strings.Contains(logs.String(), "launch requested: ARCADE galaga") {
		t.Errorf("log = %q", logs.String())
	}
}

func TestHeldSelectDoesNotRelaunch(t *testing.T) {
	app := newTestApp(t)
	start := time.Unix(0, 0)
	app.HandleSignal(press(input.Keyboard, choose), start)
	for ms := 100; ms <= 2000; ms += 100 {
		app.Tick(start.Add(time.Duration(ms) * time.Millisecond))
	}
	if got := app.Store.Snapshot().Launch.Count; got != 1 {
		t.Errorf("launch count = %d, want 1", got)
	}
}

func TestStartRunsUntilExit(t *testing.T) {
	app := newTestApp(t)
	source := &fakeSource{ch: make(chan input.Signal)}
	console := &fakeConsole{}
	surface := &fakeSurface{w: 320, h: 225}
	app.Input = source
	app.Console = console
	app.Surface = surface

	done := make(chan error, 1)
	go func() { done <- app.Start(context.Background()) }()

	// The loop is single-threaded: once the second send is accepted the
	// first signal has been handled.
	source.ch <- press(input.Keyboard, choose)
	source.ch <- release(input.Keyboard, choose)
	want := errors.New("shutdown")
	app.Exit(want)

	select {
	case err := <-done:
		if !errors.Is(err, want) {
			t.Fatalf("Start = %v, want %v", err, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Exit")
	}

	snap := app.Store.Snapshot()
	if snap.Phase != state.STOPPING {
		t.Errorf("phase = %v, want STOPPING", snap.Phase)
	}
	if snap.Launch.Count != 1 || snap.Launch.Game != "Pac-Man" {
		t.Errorf("launch = %+v", snap.Launch)
	}
	if !source.started || !source.stopped {
		t.Errorf("source started=%v stopped=%v", source.started, source.stopped)
	}
	if console.acquired != 1 || console.released != 1 {
		t.Errorf("console = %+v", console)
	}
	if surface.presents == 0 {
		t.Error("no frame presented")
	}
}

func TestStartCancelled(t *testing.T) {
	app := newTestApp(t)
	source := input.NewNoopSource()
	app.Input = source
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start = %v, want nil on cancellation", err)
	}
	if _, open := <-source.Signals(); open {
		t.Error("input source was not stopped")
	}
	if phase := app.Store.Snapshot().Phase; phase != state.STOPPING {
		t.Errorf("phase = %v, want STOPPING", phase)
	}
}

func TestResolveLogLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "WARN": "WARN", "error": "ERROR", "": "INFO", "chatty": "INFO"}
	for in, want := range tests {
		if got := ResolveLogLevel(in).String(); got != want {
			t.Errorf("ResolveLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, "error")
	l.Infof("library", "hidden")
	l.Errorf("library", "scan failed: %d", 3)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line logged at error level: %q", out)
	}
	if !strings.Contains(out, "scan failed: 3") || !strings.Contains(out, "component=library") {
		t.Errorf("log = %q", out)
	}
}
