package widget

import (
	"image"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/render/layout"
)

// SplitPanel composes two children along one axis. It draws nothing itself.
//
// Commands are routed first to the first child and reach the second only
// when the first returns no event. Events are broadcast to both children,
// first then second.
type SplitPanel struct {
	bounds

	first  Widget
	second Widget
	value  int
	mode   layout.Mode
	axis   layout.Axis
}

// NewSplitPanel splits first (top or left) from second (bottom or right) at
// value, read as a percentage or a cell count according to mode.
func NewSplitPanel(first, second Widget, value int, mode layout.Mode, axis layout.Axis) *SplitPanel {
	panel := &SplitPanel{first: first, second: second, value: value, mode: mode, axis: axis}
	panel.ArrangeWidgets()
	return panel
}

func (panel *SplitPanel) SetRect(x, y, w, h int) {
	panel.bounds.SetRect(x, y, w, h)
	panel.ArrangeWidgets()
}

func (panel *SplitPanel) ArrangeWidgets() {
	first, second, ok := layout.Split(panel.rect, panel.value, panel.mode, panel.axis)
	if !ok {
		return
	}
	panel.first.SetRect(first.X, first.Y, first.W, first.H)
	panel.second.SetRect(second.X, second.Y, second.W, second.H)
}

func (panel *SplitPanel) HandleCommand(cmd command.Command) command.Event {
	if ev := panel.first.HandleCommand(cmd); !ev.IsNone() {
		return ev
	}
	return panel.second.HandleCommand(cmd)
}

func (panel *SplitPanel) HandleEvent(ev command.Event) {
	panel.first.HandleEvent(ev)
	panel.second.HandleEvent(ev)
}

func (panel *SplitPanel) Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics) {
	panel.first.Draw(dst, engine, m)
	panel.second.Draw(dst, engine, m)
}
