package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rook-computer/osiris/internal/system"
)

// mameSystem is the directory name (upper-cased) whose catalog comes from MAME
// rather than from the files on disk.
const mameSystem = "MAME"

// artDir holds per-game artwork inside each system directory.
const artDir = "images"

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// Database binds a RetroArch RDB file to a system for metadata enrichment.
type Database struct {
	System     string
	Path       string
	Extensions []string
}

type Options struct {
	// Root contains one directory per system.
	Root string
	// MameBinary is run with -listxml for the MAME directory. Defaults to "mame".
	MameBinary string
	Databases  []Database
	Runner     system.Runner
	Logger     Logger
}

type scanner struct {
	opts   Options
	logger Logger
}

// Scan builds the catalog from opts.Root. Each subdirectory is a system named
// after the upper-cased directory name; systems without games are dropped.
// Systems are sorted by name and games by display name. When nothing playable
// is found, Scan returns an empty library and an error wrapping ErrNoSystems.
func Scan(ctx context.Context, opts Options) (*Library, error) {
	if opts.MameBinary == "" {
		opts.MameBinary = "mame"
	}
	if opts.Runner == nil {
		opts.Runner = system.ExecRunner{}
	}
	s := &scanner{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = noopLogger{}
	}

	entries, err := os.ReadDir(opts.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(nil), fmt.Errorf("%w: %s does not exist", ErrNoSystems, opts.Root)
		}
		return nil, fmt.Errorf("read roms root: %w", err)
	}

	var systems []System
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dir := filepath.Join(opts.Root, entry.Name())
		name := strings.ToUpper(entry.Name())

		var games []Game
		if name == mameSystem {
			var ok bool
			games, ok = s.scanMAME(ctx, dir)
			if !ok {
				games = s.scanDir(dir)
				sortGames(games)
			}
		} else {
			games = s.scanDir(dir)
			s.enrich(name, games)
			sortGames(games)
		}
		if len(games) == 0 {
			continue
		}
		s.logger.Infof("library", "%s: %d games", name, len(games))
		systems = append(systems, System{Name: name, Games: games})
	}

	sort.Slice(systems, func(i, j int) bool { return systems[i].Name < systems[j].Name })
	if len(systems) == 0 {
		return New(nil), fmt.Errorf("%w under %s", ErrNoSystems, opts.Root)
	}
	return New(systems), nil
}

// scanDir lists the non-hidden files of dir as games.
func (s *scanner) scanDir(dir string) []Game {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Errorf("library", "read %s: %v", dir, err)
		return nil
	}
	var games []Game
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		games = append(games, Game{
			ID:           id,
			Name:         id,
			Path:         filepath.Join(dir, entry.Name()),
			Year:         unknown,
			Manufacturer: unknown,
			Players:      "1",
		})
	}
	return games
}

func sortGames(games []Game) {
	sort.SliceStable(games, func(i, j int) bool { return games[i].Name < games[j].Name })
}

// ArtPath returns where the artwork for a game of the named system lives:
// <root>/<system lower>/images/<id>-image.png.
func ArtPath(root, systemName, id string) string {
	return filepath.Join(root, strings.ToLower(systemName), artDir, id+"-image.png")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
