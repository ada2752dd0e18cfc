// Package library holds the read-only ROM catalog shown by the frontend and
// the scanner that builds it from a ROM directory tree.
package library

import "errors"

// ErrNoSystems is returned by Scan when the ROM root holds no playable system.
var ErrNoSystems = errors.New("no systems found")

const unknown = "UNKNOWN"

type Game struct {
	ID           string // short name, file stem or MAME machine name
	Name         string // display name
	Path         string
	Year         string
	Manufacturer string
	Players      string
}

type System struct {
	Name  string
	Games []Game
}

// Library is an immutable catalog of systems and their games. It is safe to
// share between widgets without synchronization since nothing mutates it
// after New returns.
type Library struct {
	systems []System
}

// New copies systems into a Library, keeping their order.
func New(systems []System) *Library {
	copied := make([]System, len(systems))
	for i, s := range systems {
		copied[i] = System{Name: s.Name, Games: append([]Game(nil), s.Games...)}
	}
	return &Library{systems: copied}
}

func (l *Library) SystemCount() int {
	if l == nil {
		return 0
	}
	return len(l.systems)
}

// SystemName returns the name of system i, or "" when out of range.
func (l *Library) SystemName(i int) string {
	if i < 0 || i >= l.SystemCount() {
		return ""
	}
	return l.systems[i].Name
}

// GameCount returns the number of games of system i, 0 when out of range.
func (l *Library) GameCount(i int) int {
	if i < 0 || i >= l.SystemCount() {
		return 0
	}
	return len(l.systems[i].Games)
}

func (l *Library) Game(system, game int) (Game, bool) {
	if game < 0 || game >= l.GameCount(system) {
		return Game{}, false
	}
	return l.systems[system].Games[game], true
}

// TotalGames counts games across all systems.
func (l *Library) TotalGames() int {
	n := 0
	for i := 0; i < l.SystemCount(); i++ {
		n += len(l.systems[i].Games)
	}
	return n
}
