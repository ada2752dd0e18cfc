package widget

import (
	"image"
	"math"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
)

const listTitle = "GAME LIST"

// List selects a game of the current system. Up and Down stop at the ends.
type List struct {
	bounds

	lib      *library.Library
	system   int
	selected int
	offset   int
}

func NewList(lib *library.Library) *List {
	return &List{lib: lib}
}

// Selected returns the system and game indices the list points at.
func (list *List) Selected() (system, game int) { return list.system, list.selected }

// Offset returns the index of the first visible row.
func (list *List) Offset() int { return list.offset }

// SetRect also scrolls so a shrunken window still shows the selection.
func (list *List) SetRect(x, y, w, h int) {
	list.bounds.SetRect(x, y, w, h)
	list.scrollToSelection()
}

// visibleRows is the number of rows inside the border, never less than one.
func (list *List) visibleRows() int {
	return max(content(list.rect).H, 1)
}

func (list *List) HandleCommand(cmd command.Command) command.Event {
	if action, ok := cmd.Action(); ok {
		if action != command.Select {
			return command.None()
		}
		if _, ok := list.lib.Game(list.system, list.selected); !ok {
			return command.None()
		}
		return command.LaunchGame(list.system, list.selected)
	}

	dir, _ := cmd.Navigation()
	old := list.selected
	switch dir {
	case command.Up:
		if list.selected > 0 {
			list.selected--
		}
	case command.Down:
		if list.selected < list.lib.GameCount(list.system)-1 {
			list.selected++
		}
	default:
		return command.None()
	}
	if list.selected == old {
		return command.None()
	}
	list.scrollToSelection()
	return command.GameChanged(list.selected)
}

// scrollToSelection keeps the selection inside the visible window: it lands on
// the first row when moving above the window and on the last row when below.
func (list *List) scrollToSelection() {
	visible := list.visibleRows()
	switch {
	case list.selected < list.offset:
		list.offset = list.selected
	case list.selected >= list.offset+visible:
		list.offset = list.selected - visible + 1
	}
}

func (list *List) HandleEvent(ev command.Event) {
	if ev.Kind == command.EventSystemChanged {
		list.system = ev.System
		list.selected = 0
		list.offset = 0
	}
}

func (list *List) Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics) {
	r := list.rect
	if r.Empty() {
		return
	}
	drawFrame(dst, engine, m, r, listTitle, render.Green)

	inner := content(r)
	count := list.lib.GameCount(list.system)
	visible := inner.H
	textW := inner.W
	for row := 0; row < visible && textW > 0; row++ {
		idx := row + list.offset
		if idx >= count {
			break
		}
		g, _ := list.lib.Game(list.system, idx)
		text := fit(g.Name, textW)
		if idx == list.selected {
			engine.DrawStringEx(dst, m, text, inner.X, inner.Y+row, render.White, render.Highlight, 1)
		} else {
			engine.DrawString(dst, m, text, inner.X, inner.Y+row, render.Grey)
		}
	}
	if count == 0 && textW > 0 && visible > 0 {
		engine.DrawString(dst, m, clip("NO MODULES FOUND", textW), inner.X, inner.Y, render.Faded)
	}

	if count > visible && visible > 0 {
		list.drawScrollbar(dst, engine, m, count, visible)
	}
}

// drawScrollbar replaces the right border with a track and a handle whose
// position follows the scroll offset.
func (list *List) drawScrollbar(dst *image.RGBA, engine *render.Engine, m render.Metrics, count, visible int) {
	r := list.rect
	inner := content(r)
	pct := float64(list.offset) / math.Max(float64(count-visible), 1)
	handle := int(math.Round(pct * float64(visible-1)))
	for row := 0; row < visible; row++ {
		symbol := "▒"
		if row == handle {
			symbol = "█"
		}
		engine.DrawStringEx(dst, m, symbol, r.X+r.W-1, inner.Y+row, render.Cyan, render.Background, 1)
	}
}
