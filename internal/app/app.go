package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/input"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/state"
	"github.com/rook-computer/osiris/internal/widget"
)

// DefaultFrameRate is the tick and paint rate when FrameRate is unset.
const DefaultFrameRate = 60

// Console is the terminal the surface sits on, if any.
type Console interface {
	Acquire() error
	Release() error
}

// App is the control loop. Input signals, idle ticks and paints all happen
// on the goroutine that runs Start (or, in the simulator, the one that calls
// HandleSignal, Tick and Paint), so the widget tree and dispatcher need no
// locking.
type App struct {
	Store   *state.Store
	Library *library.Library
	Screen  *widget.Screen
	Painter *render.Painter
	Surface render.Surface
	Input   input.Source
	Console Console
	Logger  Logger
	// FrameRate bounds ticks and paints per second.
	FrameRate int
	// Debug enables a once-per-second heartbeat in the log.
	Debug bool

	dispatcher *input.Dispatcher
	redraw     bool

	heartbeatAt time.Time
	paints      int

	exitOnce atomic.Bool
	exitCh   chan error
}

// New wires the dispatcher to screen. opts are passed to the dispatcher.
func New(store *state.Store, lib *library.Library, screen *widget.Screen, painter *render.Painter, opts ...input.Option) *App {
	app := &App{
		Store:     store,
		Library:   lib,
		Screen:    screen,
		Painter:   painter,
		Surface:   render.NoopSurface{},
		Logger:    NoopLogger{},
		FrameRate: DefaultFrameRate,
		redraw:    true,
		exitCh:    make(chan error, 1),
	}
	opts = append([]input.Option{
		input.WithRedraw(app.RequestRedraw),
		input.WithEventHandler(app.handleEvent),
	}, opts...)
	app.dispatcher = input.NewDispatcher(screen, opts...)
	painter.OnFrame = func(s render.FrameStats) {
		store.UpdateFrame(state.FrameInfo{
			RenderTime: s.RenderTime,
			FPS:        s.FPS,
			Width:      s.Width,
			Height:     s.Height,
			Cols:       s.Cols,
		})
	}
	store.SetGameCount(lib.TotalGames())
	return app
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Dispatcher exposes the input dispatcher, mainly for tests and the simulator.
func (app *App) Dispatcher() *input.Dispatcher { return app.dispatcher }

// RequestRedraw marks the frame dirty. Any number of requests between two
// paints result in one paint.
func (app *App) RequestRedraw() { app.redraw = true }

// RedrawPending reports whether the next Paint will draw.
func (app *App) RedrawPending() bool { return app.redraw }

// HandleSignal feeds one press or release into the dispatcher.
func (app *App) HandleSignal(sig input.Signal, now time.Time) {
	app.dispatcher.Handle(sig, now)
}

// Tick advances held-command timers.
func (app *App) Tick(now time.Time) {
	app.dispatcher.Tick(now)
	if app.Debug {
		app.heartbeat(now)
	}
}

// Paint draws a frame onto surface when one was requested. It reports
// whether a frame was presented. A surface without area keeps the request
// pending until it has one.
func (app *App) Paint(surface render.Surface) (bool, error) {
	if !app.redraw {
		return false, nil
	}
	painted, err := app.Painter.Paint(surface, app.Screen)
	if painted {
		app.redraw = false
		app.paints++
	}
	return painted, err
}

// Start runs the control loop until ctx is cancelled or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	defer app.Store.SetPhase(state.STOPPING)

	if app.Console != nil {
		if err := app.Console.Acquire(); err != nil {
			app.Logger.Errorf("tty", "acquire console: %v", err)
		}
		defer func() {
			if err := app.Console.Release(); err != nil {
				app.Logger.Errorf("tty", "release console: %v", err)
			}
		}()
	}

	var signals <-chan input.Signal
	if app.Input != nil {
		if err := app.Input.Start(ctx); err != nil {
			app.Logger.Errorf("input", "start: %v", err)
		} else {
			signals = app.Input.Signals()
			defer func() { _ = app.Input.Stop() }()
		}
	}

	app.Store.SetPhase(state.READY)
	app.Logger.Infof("app", "ready: %d systems, %d games", app.Library.SystemCount(), app.Library.TotalGames())
	app.RequestRedraw()
	app.paint()

	rate := app.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case sig, ok := <-signals:
			if !ok {
				app.Logger.Errorf("input", "signal source closed")
				app.dispatcher.ReleaseAll()
				signals = nil
				continue
			}
			app.HandleSignal(sig, time.Now())
		case now := <-ticker.C:
			app.Tick(now)
			app.paint()
		}
	}
}

func (app *App) paint() {
	if _, err := app.Paint(app.Surface); err != nil {
		app.Logger.Errorf("render", "paint: %v", err)
	}
}

func (app *App) handleEvent(ev command.Event) {
	if ev.Kind != command.EventLaunchGame {
		return
	}
	g, ok := app.Library.Game(ev.System, ev.Game)
	if !ok {
		app.Logger.Errorf("app", "launch request for unknown game %d/%d", ev.System, ev.Game)
		return
	}
	systemName := app.Library.SystemName(ev.System)
	app.Store.RecordLaunch(state.LaunchInfo{
		SystemIndex: ev.System,
		GameIndex:   ev.Game,
		System:      systemName,
		Game:        g.Name,
		Path:        g.Path,
		At:          time.Now(),
	})
	app.Logger.Infof("app", "launch requested: %s %s (%s)", systemName, g.ID, g.Path)
}

func (app *App) heartbeat(now time.Time) {
	if app.heartbeatAt.IsZero() {
		app.heartbeatAt = now
		return
	}
	if now.Sub(app.heartbeatAt) < time.Second {
		return
	}
	frame := app.Store.Snapshot().Frame
	app.Logger.Infof("app", "heartbeat: %d paints, %d dispatches, %d held, last frame %v at %d fps",
		app.paints, app.dispatcher.Dispatches(), len(app.dispatcher.Held()), frame.RenderTime, frame.FPS)
	app.heartbeatAt = now
	app.paints = 0
}
