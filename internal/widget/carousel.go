package widget

import (
	"image"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
)

const (
	carouselSlots = 5
	carouselTitle = "EMULATOR SUBSYSTEMS"
)

// Carousel selects a system. Left and Right wrap around the system list.
type Carousel struct {
	bounds

	lib      *library.Library
	selected int
}

func NewCarousel(lib *library.Library) *Carousel {
	return &Carousel{lib: lib}
}

// Selected returns the index of the selected system.
func (carousel *Carousel) Selected() int { return carousel.selected }

func (carousel *Carousel) HandleCommand(cmd command.Command) command.Event {
	n := carousel.lib.SystemCount()
	if n == 0 {
		return command.None()
	}
	dir, ok := cmd.Navigation()
	if !ok {
		return command.None()
	}
	old := carousel.selected
	switch dir {
	case command.Right:
		carousel.selected = (carousel.selected + 1) % n
	case command.Left:
		carousel.selected = (carousel.selected + n - 1) % n
	default:
		return command.None()
	}
	if carousel.selected == old {
		return command.None()
	}
	return command.SystemChanged(carousel.selected)
}

func (carousel *Carousel) HandleEvent(command.Event) {}

// Draw lays out five slots: two systems before the selection, the selection
// at double size, and two after, wrapping at both ends.
func (carousel *Carousel) Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics) {
	r := carousel.rect
	if r.Empty() {
		return
	}
	drawFrame(dst, engine, m, r, carouselTitle, render.Cyan)

	n := carousel.lib.SystemCount()
	centerY := r.Y + r.H/2 - 1
	if centerY < r.Y {
		centerY = r.Y
	}
	if n == 0 {
		msg := "NO SYSTEMS DETECTED"
		engine.DrawString(dst, m, msg, r.X+max(r.W/2-runeLen(msg)/2, 1), centerY+1, render.Faded)
		return
	}

	slotW := r.W / carouselSlots
	for i := 0; i < carouselSlots; i++ {
		if i == carouselSlots/2 {
			continue
		}
		label := clip(carousel.lib.SystemName(carousel.slotIndex(i)), max(slotW-2, 1))
		slotCenter := r.X + i*slotW + slotW/2
		x := max(slotCenter-runeLen(label)/2, r.X+1)
		engine.DrawString(dst, m, label, x, centerY+1, render.Faded)
	}

	// The selection goes last so the side slots never cover it. Double-size
	// text spans two cells per rune.
	display := "[ " + carousel.lib.SystemName(carousel.selected) + " ]"
	center := r.X + (carouselSlots/2)*slotW + slotW/2
	x := max(center-runeLen(display), r.X+1)
	engine.DrawStringEx(dst, m, display, x, centerY, render.White, render.Highlight, 2)
}

// slotIndex maps a slot to a system index; the middle slot is the selection.
func (carousel *Carousel) slotIndex(slot int) int {
	n := carousel.lib.SystemCount()
	return ((carousel.selected+slot-carouselSlots/2)%n + n) % n
}
