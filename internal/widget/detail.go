package widget

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/render/layout"
)

const (
	detailTitle    = "MODULE DETAILS"
	artRows        = 14
	artTop         = 10
	noVisualFeed   = "NO VISUAL FEED"
	qrCodeSizePx   = 256
	minQRCodeRows  = 4
	detailTitleRow = 2
)

// ArtSource loads the artwork for a game.
type ArtSource interface {
	LoadImage(systemName string, g library.Game) (image.Image, error)
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Detail shows the game last announced by SystemChanged or GameChanged.
type Detail struct {
	bounds

	lib *library.Library

	// Art is consulted on every selection event. Nil disables artwork.
	Art ArtSource
	// InfoURL, when set, is rendered as a QR code. {system} and {id} are
	// replaced with the query-escaped system name and game id.
	InfoURL string
	Logger  Logger

	system int
	game   int
	art    image.Image
	qr     image.Image
}

func NewDetail(lib *library.Library, art ArtSource) *Detail {
	return &Detail{lib: lib, Art: art}
}

// Selected returns the system and game indices on display.
func (detail *Detail) Selected() (system, game int) { return detail.system, detail.game }

// HasArt reports whether artwork was loaded for the game on display.
func (detail *Detail) HasArt() bool { return detail.art != nil }

func (detail *Detail) HandleCommand(cmd command.Command) command.Event {
	action, ok := cmd.Action()
	if !ok || action != command.Select {
		return command.None()
	}
	if _, ok := detail.lib.Game(detail.system, detail.game); !ok {
		return command.None()
	}
	return command.LaunchGame(detail.system, detail.game)
}

func (detail *Detail) HandleEvent(ev command.Event) {
	switch ev.Kind {
	case command.EventSystemChanged:
		detail.system = ev.System
		detail.game = 0
	case command.EventGameChanged:
		detail.game = ev.Game
	default:
		return
	}
	detail.Reload()
}

// Reload refreshes artwork and QR code for the game on display. Failures are
// logged and leave the placeholder in place.
func (detail *Detail) Reload() {
	detail.art = nil
	detail.qr = nil
	g, ok := detail.lib.Game(detail.system, detail.game)
	if !ok {
		return
	}
	systemName := detail.lib.SystemName(detail.system)

	if detail.Art != nil {
		img, err := detail.Art.LoadImage(systemName, g)
		switch {
		case err == nil:
			detail.art = img
		case errors.Is(err, fs.ErrNotExist):
		default:
			detail.errorf("artwork for %s/%s: %v", systemName, g.ID, err)
		}
	}

	if detail.InfoURL != "" {
		img, err := render.GenerateQRCodeImage(expandInfoURL(detail.InfoURL, systemName, g.ID), qrCodeSizePx)
		if err != nil {
			detail.errorf("qr code for %s/%s: %v", systemName, g.ID, err)
		} else {
			detail.qr = img
		}
	}
}

func (detail *Detail) errorf(format string, args ...interface{}) {
	if detail.Logger != nil {
		detail.Logger.Errorf("detail", format, args...)
	}
}

func expandInfoURL(template, systemName, id string) string {
	return strings.NewReplacer(
		"{system}", url.QueryEscape(strings.ToLower(systemName)),
		"{id}", url.QueryEscape(id),
	).Replace(template)
}

func (detail *Detail) Draw(dst *image.RGBA, engine *render.Engine, m render.Metrics) {
	r := detail.rect
	if r.Empty() {
		return
	}
	drawFrame(dst, engine, m, r, detailTitle, render.Cyan)

	inner := content(r)
	textW := inner.W
	g, ok := detail.lib.Game(detail.system, detail.game)
	if !ok {
		if textW > 0 {
			engine.DrawString(dst, m, clip("NO MODULE SELECTED", textW), inner.X, r.Y+detailTitleRow, render.Faded)
		}
		return
	}
	if textW <= 0 {
		return
	}

	x := inner.X
	engine.DrawStringEx(dst, m, clip(g.Name, max(textW/2, 1)), x, r.Y+detailTitleRow, render.White, nil, 2)
	lines := []string{
		"PLATFORM: " + detail.lib.SystemName(detail.system),
		"FILENAME: " + filepath.Base(g.Path),
		"ID: " + g.ID,
		fmt.Sprintf("YEAR: %s | PLAYERS: %s", g.Year, g.Players),
		"MANUFACTURER: " + g.Manufacturer,
	}
	for i, line := range lines {
		engine.DrawString(dst, m, clip(line, textW), x, r.Y+5+i, render.Green)
	}

	artY := r.Y + artTop
	artH := min(artRows, r.H-artTop-1)
	if artH >= 2 {
		engine.FillCells(dst, m, x, artY, textW, artH, render.PanelShade)
		engine.DrawBox(dst, m, x, artY, textW, artH, render.Cyan)
		if detail.art != nil {
			pic := layout.Inset(layout.R(x, artY, textW, artH), 1, 1)
			engine.DrawImage(dst, m, detail.art, pic.X, pic.Y, pic.W, pic.H)
		} else {
			msg := clip(noVisualFeed, textW)
			engine.DrawString(dst, m, msg, x+max(textW/2-runeLen(msg)/2, 0), artY+artH/2, render.Faded)
		}
	}

	// The QR code sits in the space left below the artwork, right-aligned.
	footerY := artY + max(artH, 0) + 1
	qrRows := r.Y + r.H - 1 - footerY
	if detail.qr != nil && qrRows >= minQRCodeRows {
		qrCols := int(float64(qrRows) * m.CharHeight / m.CharWidth)
		if qrCols <= textW {
			engine.DrawImage(dst, m, detail.qr, x+textW-qrCols, footerY, qrCols, qrRows)
		}
	}
	if r.H >= 3 {
		engine.DrawString(dst, m, clip("PRESS SELECT TO LAUNCH", textW), x, inner.Y+inner.H-1, render.White)
	}
}
