// Package command defines the vocabulary exchanged between input dispatch and
// the widget tree: commands flow down, events bubble back up.
package command

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindNavigation Kind = iota + 1
	KindAction
)

type Direction uint8

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

type Action uint8

const (
	Select Action = iota + 1
	Back
)

func (a Action) String() string {
	switch a {
	case Select:
		return "Select"
	case Back:
		return "Back"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Command is either a Navigation(direction) or an Action(action).
// The zero value is not a valid command. Commands are comparable and are
// used as map keys by the input dispatcher.
type Command struct {
	kind      Kind
	direction Direction
	action    Action
}

func Navigate(d Direction) Command { return Command{kind: KindNavigation, direction: d} }
func Act(a Action) Command         { return Command{kind: KindAction, action: a} }

func (c Command) Valid() bool { return c.kind != 0 }

// Navigation returns the direction carried by a navigation command.
func (c Command) Navigation() (Direction, bool) {
	if c.kind != KindNavigation {
		return 0, false
	}
	return c.direction, true
}

// Action returns the action carried by an action command.
func (c Command) Action() (Action, bool) {
	if c.kind != KindAction {
		return 0, false
	}
	return c.action, true
}

// Repeatable reports whether holding the command auto-repeats.
// Confirm and cancel never repeat.
func (c Command) Repeatable() bool { return c.kind == KindNavigation }

func (c Command) String() string {
	switch c.kind {
	case KindNavigation:
		return "Navigation(" + c.direction.String() + ")"
	case KindAction:
		return "Action(" + c.action.String() + ")"
	}
	return "Command(none)"
}

// Flat is the single-enum form of the command vocabulary.
type Flat uint8

const (
	FlatUp Flat = iota + 1
	FlatDown
	FlatLeft
	FlatRight
	FlatSelect
	FlatBack
)

var flatNames = map[Flat]string{
	FlatUp:     "up",
	FlatDown:   "down",
	FlatLeft:   "left",
	FlatRight:  "right",
	FlatSelect: "select",
	FlatBack:   "back",
}

func (f Flat) String() string {
	if name, ok := flatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("flat(%d)", uint8(f))
}

// ParseFlat resolves a binding name such as "up" or "select".
func ParseFlat(name string) (Flat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range flatNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown command %q", name)
}

// FromFlat converts the flat form into the tagged form.
func FromFlat(f Flat) Command {
	switch f {
	case FlatUp:
		return Navigate(Up)
	case FlatDown:
		return Navigate(Down)
	case FlatLeft:
		return Navigate(Left)
	case FlatRight:
		return Navigate(Right)
	case FlatSelect:
		return Act(Select)
	case FlatBack:
		return Act(Back)
	}
	return Command{}
}

// Flat converts the tagged form into the flat form.
func (c Command) Flat() Flat {
	switch c.kind {
	case KindNavigation:
		switch c.direction {
		case Up:
			return FlatUp
		case Down:
			return FlatDown
		case Left:
			return FlatLeft
		case Right:
			return FlatRight
		}
	case KindAction:
		switch c.action {
		case Select:
			return FlatSelect
		case Back:
			return FlatBack
		}
	}
	return 0
}

// All lists every valid command in flat order.
func All() []Command {
	return []Command{
		Navigate(Up), Navigate(Down), Navigate(Left), Navigate(Right),
		Act(Select), Act(Back),
	}
}
