package widget

import (
	"fmt"
	"image"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/state"
)

const productTitle = "OSIRIS"

// Snapshotter exposes the status store to the status bar.
type Snapshotter interface {
	Snapshot() state.State
}

// StatusBar is a one-row strip showing the phase, the last launch request and
// stats of the previous frame. It takes no commands.
type StatusBar struct {
	bounds

	store Snapshotter
}

func NewStatusBar(store Snapshotter) *StatusBar {
	return &StatusBar{store: store}
}

func (bar *StatusBar) HandleCommand(command.Command) command.Event { return command.None() }
func (bar *StatusBar) HandleEvent(command.Event)                   {}

func (bar *StatusBar) Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics) {
	r := bar.rect
	if r.Empty() {
		return
	}
	engine.FillCells(dst, m, r.X, r.Y, r.W, r.H, render.StatusShade)
	snap := bar.store.Snapshot()

	left := fmt.Sprintf(" %s // %s // %d MODULES", productTitle, snap.Phase, snap.Games)
	right := fmt.Sprintf("RENDER %.2fms | %d FPS ", float64(snap.Frame.RenderTime.Microseconds())/1000, snap.Frame.FPS)
	middle := ""
	if snap.Launch.Count > 0 {
		middle = fmt.Sprintf("LAUNCH REQUEST: %s / %s", snap.Launch.System, snap.Launch.Game)
	}

	row := r.Y + r.H - 1
	engine.DrawString(dst, m, clip(left, r.W), r.X, row, render.Green)
	rightX := r.X + r.W - runeLen(right)
	if rightX > r.X+runeLen(left) {
		engine.DrawString(dst, m, right, rightX, row, render.Grey)
	}
	if middle != "" {
		midX := r.X + runeLen(left) + 2
		if avail := rightX - midX - 1; avail > 0 {
			engine.DrawString(dst, m, clip(middle, avail), midX, row, render.Cyan)
		}
	}
}
