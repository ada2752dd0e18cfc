package main

import (
	"context"
	"image"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/rook-computer/osiris/internal/app"
	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/input"
)

var keyCommands = map[ebiten.Key]command.Command{
	ebiten.KeyArrowUp:    command.Navigate(command.Up),
	ebiten.KeyArrowDown:  command.Navigate(command.Down),
	ebiten.KeyArrowLeft:  command.Navigate(command.Left),
	ebiten.KeyArrowRight: command.Navigate(command.Right),
	ebiten.KeyEnter:      command.Act(command.Select),
	ebiten.KeySpace:      command.Act(command.Select),
	ebiten.KeyEscape:     command.Act(command.Back),
	ebiten.KeyBackspace:  command.Act(command.Back),
}

var padCommands = map[ebiten.StandardGamepadButton]command.Command{
	ebiten.StandardGamepadButtonLeftTop:     command.Navigate(command.Up),
	ebiten.StandardGamepadButtonLeftBottom:  command.Navigate(command.Down),
	ebiten.StandardGamepadButtonLeftLeft:    command.Navigate(command.Left),
	ebiten.StandardGamepadButtonLeftRight:   command.Navigate(command.Right),
	ebiten.StandardGamepadButtonRightBottom: command.Act(command.Select),
	ebiten.StandardGamepadButtonCenterRight: command.Act(command.Select),
	ebiten.StandardGamepadButtonRightRight:  command.Act(command.Back),
}

const keyboardSource = "keyboard"

func gamepadSource(id ebiten.GamepadID) string { return "gamepad/" + strconv.Itoa(int(id)) }

// window is both the ebiten game and the surface the app paints on. Update
// and Draw run on one goroutine, which makes it the app's control loop.
type window struct {
	ctx context.Context
	app *app.App

	width, height int
	buf           *image.RGBA
	offscreen     *ebiten.Image
	dirty         bool
}

func newWindow(ctx context.Context, a *app.App) *window {
	return &window{ctx: ctx, app: a}
}

func (w *window) Size() (int, int) { return w.width, w.height }

func (w *window) Buffer(width, height int) (*image.RGBA, error) {
	if w.buf == nil || w.buf.Bounds().Dx() != width || w.buf.Bounds().Dy() != height {
		w.buf = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return w.buf, nil
}

func (w *window) Present() error {
	w.dirty = true
	return nil
}

func (w *window) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	now := time.Now()

	for key, cmd := range keyCommands {
		ctl := input.Control{Device: input.Keyboard, Source: keyboardSource, Code: uint32(key)}
		if inpututil.IsKeyJustPressed(key) {
			w.app.HandleSignal(input.Signal{Control: ctl, Command: cmd, Pressed: true}, now)
		} else if inpututil.IsKeyJustReleased(key) {
			w.app.HandleSignal(input.Signal{Control: ctl, Command: cmd}, now)
		}
	}

	for _, id := range inpututil.AppendJustDisconnectedGamepadIDs(nil) {
		w.app.Dispatcher().ReleaseSource(gamepadSource(id))
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for button, cmd := range padCommands {
			ctl := input.Control{Device: input.Gamepad, Source: gamepadSource(id), Code: uint32(button)}
			if inpututil.IsStandardGamepadButtonJustPressed(id, button) {
				w.app.HandleSignal(input.Signal{Control: ctl, Command: cmd, Pressed: true}, now)
			} else if inpututil.IsStandardGamepadButtonJustReleased(id, button) {
				w.app.HandleSignal(input.Signal{Control: ctl, Command: cmd}, now)
			}
		}
	}

	w.app.Tick(now)
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if _, err := w.app.Paint(w); err != nil {
		w.app.Logger.Errorf("render", "paint: %v", err)
	}
	if w.buf == nil {
		return
	}
	bounds := w.buf.Bounds()
	if w.offscreen == nil || w.offscreen.Bounds().Size() != bounds.Size() {
		w.offscreen = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		w.dirty = true
	}
	if w.dirty {
		w.offscreen.WritePixels(w.buf.Pix)
		w.dirty = false
	}
	screen.DrawImage(w.offscreen, nil)
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.app.RequestRedraw()
	}
	return outsideWidth, outsideHeight
}
