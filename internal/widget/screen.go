package widget

import (
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/render/layout"
)

const (
	DefaultCarouselPercent = 20
	DefaultListPercent     = 35
)

// ScreenOptions configures the production layout.
type ScreenOptions struct {
	CarouselPercent int
	ListPercent     int
	Art             ArtSource
	InfoURL         string
	Logger          Logger
}

// Screen is the full widget tree along with handles to its leaves.
type Screen struct {
	*SplitPanel

	Carousel *Carousel
	List     *List
	Detail   *Detail
	Status   *StatusBar
}

// NewScreen builds the three-pane browser above a one-row status bar:
//
//	carousel
//	list | detail
//	status
func NewScreen(lib *library.Library, store Snapshotter, opts ScreenOptions) *Screen {
	if opts.CarouselPercent <= 0 {
		opts.CarouselPercent = DefaultCarouselPercent
	}
	if opts.ListPercent <= 0 {
		opts.ListPercent = DefaultListPercent
	}

	carousel := NewCarousel(lib)
	list := NewList(lib)
	detail := NewDetail(lib, opts.Art)
	detail.InfoURL = opts.InfoURL
	detail.Logger = opts.Logger
	detail.Reload()
	status := NewStatusBar(store)

	browser := NewSplitPanel(
		carousel,
		NewSplitPanel(list, detail, opts.ListPercent, layout.Percent, layout.Horizontal),
		opts.CarouselPercent, layout.Percent, layout.Vertical,
	)
	root := NewSplitPanel(browser, status, render.GridRows-1, layout.Cells, layout.Vertical)
	return &Screen{SplitPanel: root, Carousel: carousel, List: list, Detail: detail, Status: status}
}
