// Package widget implements the frontend's widget tree: leaf panels over the
// ROM library and the split panel that composes them.
package widget

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/render/layout"
)

// Widget is anything that can sit in the tree. Rectangles are in grid cells.
//
// HandleCommand updates the widget's own navigation state and returns the
// resulting event; it never draws. HandleEvent reacts to an event raised
// elsewhere in the tree and must tolerate receiving the same event twice.
// Draw renders the current state into the assigned rectangle.
type Widget interface {
	SetRect(x, y, w, h int)
	HandleCommand(cmd command.Command) command.Event
	HandleEvent(ev command.Event)
	Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics)
}

// Container is implemented by widgets that own children. ArrangeWidgets
// recomputes and applies the child rectangles from the container's own.
type Container interface {
	ArrangeWidgets()
}

// bounds records the rectangle assigned by the parent.
type bounds struct {
	rect layout.Rect
}

func (b *bounds) SetRect(x, y, w, h int) { b.rect = layout.R(x, y, w, h) }

// Rect returns the assigned rectangle.
func (b *bounds) Rect() layout.Rect { return b.rect }

// fit pads or truncates s to exactly width runes, marking truncation with an ellipsis.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	n := utf8.RuneCountInString(s)
	if n > width {
		runes := []rune(s)
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-n)
}

// clip truncates s to at most width runes, with an ellipsis when shortened.
func clip(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return fit(s, width)
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// content is the text area of a framed panel: two columns clear of each
// side border and one row clear of the top and bottom.
func content(r layout.Rect) layout.Rect { return layout.Inset(r, 2, 1) }

// drawFrame draws the border and the title tab shared by every panel.
func drawFrame(dst *image.RGBA, engine *render.Engine, m render.Metrics, r layout.Rect, title string, titleColor color.Color) {
	engine.DrawBox(dst, m, r.X, r.Y, r.W, r.H, render.Cyan)
	inner := content(r)
	if title == "" || inner.W < 2 {
		return
	}
	engine.DrawStringEx(dst, m, clip(" "+title+" ", inner.W), inner.X, r.Y, titleColor, render.Background, 1)
}
