package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rook-computer/osiris/internal/app"
	"github.com/rook-computer/osiris/internal/assets"
	"github.com/rook-computer/osiris/internal/config"
	"github.com/rook-computer/osiris/internal/input"
	"github.com/rook-computer/osiris/internal/library"
	"github.com/rook-computer/osiris/internal/render"
	"github.com/rook-computer/osiris/internal/state"
	"github.com/rook-computer/osiris/internal/system"
	"github.com/rook-computer/osiris/internal/widget"
)

func main() {
	configPath := flag.String("config", "osiris.toml", "path to the TOML configuration file")
	roms := flag.String("roms", "", "ROM root directory (overrides library.roms)")
	fontPath := flag.String("font", "", "TTF/OTF font file (overrides font.path)")
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 900, "initial window height")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if *roms != "" {
		cfg.Library.Roms = *roms
	}
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	logger := app.NewTextLogger(os.Stdout, cfg.General.LogLevel)

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fontData, err := assets.FontBytes(cfg.Font.Path)
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(1)
	}
	engineName, err := render.ParseFontEngine(cfg.Font.Engine)
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(1)
	}
	face, err := render.LoadFont(fontData, engineName)
	if err != nil {
		fmt.Println("font error:", err)
		os.Exit(1)
	}

	var dbs []library.Database
	for _, db := range cfg.Library.Databases {
		dbs = append(dbs, library.Database{System: db.System, Path: db.Path, Extensions: db.Extensions})
	}
	lib, err := library.Scan(processCtx, library.Options{
		Root:       cfg.Library.Roms,
		MameBinary: cfg.Library.MameBinary,
		Databases:  dbs,
		Runner:     system.ExecRunner{Logger: logger},
		Logger:     logger,
	})
	if err != nil && !errors.Is(err, library.ErrNoSystems) {
		fmt.Println("library error:", err)
		os.Exit(1)
	}
	if err != nil {
		logger.Errorf("library", "%v", err)
	}

	store := state.NewStore()
	screen := widget.NewScreen(lib, store, widget.ScreenOptions{
		CarouselPercent: cfg.Layout.CarouselPercent,
		ListPercent:     cfg.Layout.ListPercent,
		Art:             library.ArtLoader{Root: cfg.Library.Roms},
		InfoURL:         cfg.Detail.InfoURL,
		Logger:          logger,
	})
	a := app.New(store, lib, screen, render.NewPainter(render.NewEngine(face)),
		input.WithRepeat(cfg.Input.RepeatDelay.Duration, cfg.Input.RepeatInterval.Duration))
	a.Logger = logger
	store.SetPhase(state.READY)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Osiris simulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Display.FrameRate)

	fmt.Printf("Osiris simulator: %d systems, %d games from %s\n", lib.SystemCount(), lib.TotalGames(), cfg.Library.Roms)
	if err := ebiten.RunGame(newWindow(processCtx, a)); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
	store.SetPhase(state.STOPPING)
}
