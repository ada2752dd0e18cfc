package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

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
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "osiris:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "osiris.toml", "path to the TOML configuration file")
	debug := flag.Bool("debug", false, "enable debug logging to ./osiris-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via OSIRIS_STDIO_LOG")
	roms := flag.String("roms", "", "ROM root directory (overrides library.roms)")
	fontPath := flag.String("font", "", "TTF/OTF font file (overrides font.path)")
	fbPath := flag.String("fb", "", "framebuffer device (overrides display.framebuffer)")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *stdioLog != "" {
		cfg.General.StdioLog = *stdioLog
	}
	if *roms != "" {
		cfg.Library.Roms = *roms
	}
	if *fontPath != "" {
		cfg.Font.Path = *fontPath
	}
	if *fbPath != "" {
		cfg.Display.Framebuffer = *fbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Best-effort: send all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if cfg.General.StdioLog != "" {
		if err := redirectStdIO(cfg.General.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NewTextLogger(os.Stderr, cfg.General.LogLevel)
	if *debug {
		f, err := os.OpenFile("./osiris-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewTextLogger(f, "debug")
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fontData, err := assets.FontBytes(cfg.Font.Path)
	if err != nil {
		return err
	}
	engineName, err := render.ParseFontEngine(cfg.Font.Engine)
	if err != nil {
		return err
	}
	face, err := render.LoadFont(fontData, engineName)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}

	surface, err := render.OpenFB(cfg.Display.Framebuffer)
	if err != nil {
		return err
	}
	defer surface.Close()
	surface.Logger = logger

	lib, err := library.Scan(ctx, library.Options{
		Root:       cfg.Library.Roms,
		MameBinary: cfg.Library.MameBinary,
		Databases:  databases(cfg.Library.Databases),
		Runner:     system.ExecRunner{Logger: logger},
		Logger:     logger,
	})
	if errors.Is(err, library.ErrNoSystems) {
		logger.Errorf("library", "%v", err)
	} else if err != nil {
		return fmt.Errorf("scan library: %w", err)
	}

	keymap, err := input.NewKeymap(
		overlay(input.DefaultKeyboardBindings(), cfg.Input.Keyboard),
		overlay(input.DefaultGamepadBindings(), cfg.Input.Gamepad),
	)
	if err != nil {
		return err
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
	a.Surface = surface
	a.Input = input.NewEvdevSource(cfg.Input.Devices, keymap, logger)
	a.Console = &system.Console{Logger: logger}
	a.Logger = logger
	a.FrameRate = cfg.Display.FrameRate
	a.Debug = *debug

	logger.Infof("main", "osiris starting on %s with %d games", cfg.Display.Framebuffer, lib.TotalGames())
	return a.Start(ctx)
}

func databases(in []config.DatabaseConfig) []library.Database {
	out := make([]library.Database, 0, len(in))
	for _, db := range in {
		out = append(out, library.Database{System: db.System, Path: db.Path, Extensions: db.Extensions})
	}
	return out
}

// overlay replaces the default codes of every command named in custom.
func overlay(defaults input.Bindings, custom map[string][]uint16) input.Bindings {
	for name, codes := range custom {
		defaults[name] = codes
	}
	return defaults
}
