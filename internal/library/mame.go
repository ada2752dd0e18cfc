package library

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// machine is the subset of a `mame -listxml` <machine> element the catalog uses.
type machine struct {
	Name         string `xml:"name,attr"`
	Runnable     string `xml:"runnable,attr"`
	Description  string `xml:"description"`
	Year         string `xml:"year"`
	Manufacturer string `xml:"manufacturer"`
	Input        *struct {
		Players string `xml:"players,attr"`
	} `xml:"input"`
}

// ParseListXML streams MAME's -listxml output and returns the runnable
// machines whose <name>.zip exists in romDir according to exists. On a
// malformed document it returns the machines read so far along with the error.
func ParseListXML(r io.Reader, romDir string, exists func(path string) bool) ([]Game, error) {
	dec := xml.NewDecoder(r)
	var games []Game
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return games, fmt.Errorf("listxml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "machine" {
			continue
		}
		var m machine
		if err := dec.DecodeElement(&m, &start); err != nil {
			return games, fmt.Errorf("listxml machine: %w", err)
		}
		if m.Name == "" || m.Runnable == "no" {
			continue
		}
		path := filepath.Join(romDir, m.Name+".zip")
		if exists != nil && !exists(path) {
			continue
		}
		games = append(games, machineGame(m, path))
	}
	return games, nil
}

func machineGame(m machine, path string) Game {
	g := Game{
		ID:           m.Name,
		Name:         strings.TrimSpace(m.Description),
		Path:         path,
		Year:         strings.TrimSpace(m.Year),
		Manufacturer: strings.TrimSpace(m.Manufacturer),
		Players:      "1",
	}
	if g.Name == "" {
		g.Name = m.Name
	}
	if g.Year == "" {
		g.Year = unknown
	}
	if g.Manufacturer == "" {
		g.Manufacturer = unknown
	}
	if m.Input != nil && m.Input.Players != "" {
		g.Players = m.Input.Players
	}
	return g
}

// scanMAME asks the MAME binary for its machine list. ok is false when the
// binary could not be run, in which case the caller falls back to a file scan.
func (s *scanner) scanMAME(ctx context.Context, dir string) (games []Game, ok bool) {
	s.logger.Infof("library", "interrogating %s -listxml", s.opts.MameBinary)
	stdout, _, err := s.opts.Runner.Run(ctx, s.opts.MameBinary, "-listxml")
	if err != nil {
		s.logger.Errorf("library", "mame unavailable, falling back to file scan: %v", err)
		return nil, false
	}
	games, err = ParseListXML(strings.NewReader(stdout), dir, fileExists)
	if err != nil {
		s.logger.Errorf("library", "mame listxml: %v", err)
	}
	sortGames(games)
	s.logger.Infof("library", "mame scan complete, %d machines verified", len(games))
	return games, true
}
