package input

import "github.com/rook-computer/osiris/internal/command"

// Linux input event types.
const (
	evKey = 0x01
	evAbs = 0x03
)

// EV_KEY values.
const (
	keyReleased = 0
	keyPressed  = 1
	keyRepeated = 2
)

// absControl marks control codes that name a hat direction rather than a key:
// absControl | axis<<1 | 1 for the positive direction.
const absControl = 1 << 16

type rawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// decoder translates one device's raw events into signals. It tracks hat
// positions so a centered hat releases the direction it was holding, and
// every control it reported as pressed so a vanished device can let go.
type decoder struct {
	keymap *Keymap
	source string
	hatX   int32
	hatY   int32
	held   map[Control]command.Command
}

func (d *decoder) translate(ev rawEvent) []Signal {
	var out []Signal
	switch ev.Type {
	case evKey:
		// The kernel's autorepeat is ignored; the dispatcher times repeats itself.
		if ev.Value == keyRepeated {
			return nil
		}
		dev := DeviceForCode(ev.Code)
		cmd, ok := d.keymap.Lookup(dev, ev.Code)
		if !ok {
			return nil
		}
		ctl := Control{Device: dev, Source: d.source, Code: uint32(ev.Code)}
		out = []Signal{{Control: ctl, Command: cmd, Pressed: ev.Value == keyPressed}}
	case evAbs:
		switch ev.Code {
		case AbsHat0X:
			out = d.hat(&d.hatX, ev.Code, ev.Value, command.Left, command.Right)
		case AbsHat0Y:
			out = d.hat(&d.hatY, ev.Code, ev.Value, command.Up, command.Down)
		}
	}
	for _, sig := range out {
		d.track(sig)
	}
	return out
}

func (d *decoder) track(sig Signal) {
	if !sig.Pressed {
		delete(d.held, sig.Control)
		return
	}
	if d.held == nil {
		d.held = make(map[Control]command.Command)
	}
	d.held[sig.Control] = sig.Command
}

// releases returns a release for every control still held and forgets them.
func (d *decoder) releases() []Signal {
	out := make([]Signal, 0, len(d.held))
	for ctl, cmd := range d.held {
		out = append(out, Signal{Control: ctl, Command: cmd})
	}
	clear(d.held)
	d.hatX, d.hatY = 0, 0
	return out
}

func (d *decoder) hat(pos *int32, axis uint16, value int32, negative, positive command.Direction) []Signal {
	if value < 0 {
		value = -1
	} else if value > 0 {
		value = 1
	}
	if value == *pos {
		return nil
	}
	var out []Signal
	if dir, ok := hatDirection(*pos, negative, positive); ok {
		out = append(out, Signal{Control: d.hatControl(axis, *pos), Command: command.Navigate(dir), Pressed: false})
	}
	if dir, ok := hatDirection(value, negative, positive); ok {
		out = append(out, Signal{Control: d.hatControl(axis, value), Command: command.Navigate(dir), Pressed: true})
	}
	*pos = value
	return out
}

func (d *decoder) hatControl(axis uint16, pos int32) Control {
	code := uint32(absControl) | uint32(axis)<<1
	if pos > 0 {
		code |= 1
	}
	return Control{Device: Gamepad, Source: d.source, Code: code}
}

func hatDirection(pos int32, negative, positive command.Direction) (command.Direction, bool) {
	switch {
	case pos < 0:
		return negative, true
	case pos > 0:
		return positive, true
	}
	return 0, false
}
