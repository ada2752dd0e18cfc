package command

import "fmt"

type EventKind uint8

const (
	EventNone EventKind = iota
	EventSystemChanged
	EventGameChanged
	EventLaunchGame
)

// Event is a side effect one widget wants its siblings to know about.
// The zero value is None.
type Event struct {
	Kind   EventKind
	System int
	Game   int
}

func None() Event                   { return Event{} }
func SystemChanged(index int) Event { return Event{Kind: EventSystemChanged, System: index} }
func GameChanged(index int) Event   { return Event{Kind: EventGameChanged, Game: index} }

func LaunchGame(system, game int) Event {
	return Event{Kind: EventLaunchGame, System: system, Game: game}
}

func (e Event) IsNone() bool { return e.Kind == EventNone }

func (e Event) String() string {
	switch e.Kind {
	case EventNone:
		return "None"
	case EventSystemChanged:
		return fmt.Sprintf("SystemChanged(%d)", e.System)
	case EventGameChanged:
		return fmt.Sprintf("GameChanged(%d)", e.Game)
	case EventLaunchGame:
		return fmt.Sprintf("LaunchGame(%d,%d)", e.System, e.Game)
	}
	return fmt.Sprintf("Event(%d)", uint8(e.Kind))
}
