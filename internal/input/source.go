// Package input turns key and button transitions into commands for the
// widget tree and owns the held-command repeat timing.
package input

import (
	"context"

	"github.com/rook-computer/osiris/internal/command"
)

// Device identifies where a signal came from.
type Device uint8

const (
	Keyboard Device = 1 << iota
	Gamepad
)

func (d Device) String() string {
	switch d {
	case Keyboard:
		return "keyboard"
	case Gamepad:
		return "gamepad"
	}
	return "unknown"
}

// Control is one physical key, button or hat direction. Source names the
// device it lives on (an evdev node, a gamepad id) so identical codes on two
// devices stay apart.
type Control struct {
	Device Device
	Source string
	Code   uint32
}

// Signal is a press or release of a mapped control.
type Signal struct {
	Control Control
	Command command.Command
	Pressed bool
}

// Source delivers signals from hardware. Signals arrive in the order the
// device reported them; the channel is closed by Stop.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Signals() <-chan Signal
}

type NoopSource struct{ ch chan Signal }

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Signal)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }
func (n *NoopSource) Stop() error                     { close(n.ch); return nil }
func (n *NoopSource) Signals() <-chan Signal          { return n.ch }
