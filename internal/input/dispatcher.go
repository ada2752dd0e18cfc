package input

import (
	"sort"
	"time"

	"github.com/rook-computer/osiris/internal/command"
)

const (
	// RepeatDelay is how long a direction must be held before it repeats.
	RepeatDelay = 400 * time.Millisecond
	// RepeatInterval is the time between repeats once repeating.
	RepeatInterval = 80 * time.Millisecond
)

// Tree is the widget tree as seen by the dispatcher.
type Tree interface {
	HandleCommand(cmd command.Command) command.Event
	HandleEvent(ev command.Event)
}

type heldCommand struct {
	startedAt     time.Time
	lastTriggerAt time.Time
	repeating     bool
	controls      map[Control]struct{}
}

// Dispatcher feeds commands into a Tree and repeats held directions.
//
// Every control bound to a command shares one entry, so holding the same
// direction on keyboard and gamepad, or on a D-pad button and a hat,
// dispatches once. The entry lives until every control holding it has
// released. The dispatcher is not safe for
// concurrent use; the control loop owns it.
type Dispatcher struct {
	tree     Tree
	delay    time.Duration
	interval time.Duration
	onEvent  func(command.Event)
	redraw   func()

	held       map[command.Command]*heldCommand
	dispatches int
}

type Option func(*Dispatcher)

// WithRepeat overrides RepeatDelay and RepeatInterval.
func WithRepeat(delay, interval time.Duration) Option {
	return func(d *Dispatcher) {
		if delay > 0 {
			d.delay = delay
		}
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithEventHandler receives every non-None event after it was broadcast to the tree.
func WithEventHandler(fn func(command.Event)) Option {
	return func(d *Dispatcher) { d.onEvent = fn }
}

// WithRedraw is called whenever a dispatch may have changed what is on screen.
func WithRedraw(fn func()) Option {
	return func(d *Dispatcher) { d.redraw = fn }
}

func NewDispatcher(tree Tree, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		tree:     tree,
		delay:    RepeatDelay,
		interval: RepeatInterval,
		held:     make(map[command.Command]*heldCommand),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle applies a signal observed at now.
func (d *Dispatcher) Handle(sig Signal, now time.Time) {
	if sig.Pressed {
		d.Press(sig.Control, sig.Command, now)
	} else {
		d.Release(sig.Control, sig.Command, now)
	}
}

// Press dispatches cmd once and starts its repeat timer. A command already
// held through another control is not dispatched again.
func (d *Dispatcher) Press(ctl Control, cmd command.Command, now time.Time) {
	if !cmd.Valid() {
		return
	}
	if h, ok := d.held[cmd]; ok {
		h.controls[ctl] = struct{}{}
		return
	}
	d.held[cmd] = &heldCommand{
		startedAt:     now,
		lastTriggerAt: now,
		controls:      map[Control]struct{}{ctl: {}},
	}
	d.dispatch(cmd)
}

// Release drops ctl's hold on cmd. Once no control holds it, the timer is
// removed and no further repeat fires.
func (d *Dispatcher) Release(ctl Control, cmd command.Command, now time.Time) {
	h, ok := d.held[cmd]
	if !ok {
		return
	}
	delete(h.controls, ctl)
	if len(h.controls) == 0 {
		delete(d.held, cmd)
	}
}

// ReleaseSource drops every hold made through controls of source, e.g. when
// that device disconnects. Holds from other devices survive.
func (d *Dispatcher) ReleaseSource(source string) {
	for cmd, h := range d.held {
		for ctl := range h.controls {
			if ctl.Source == source {
				delete(h.controls, ctl)
			}
		}
		if len(h.controls) == 0 {
			delete(d.held, cmd)
		}
	}
}

// Tick advances every held timer to now, re-dispatching repeatable commands
// whose interval has elapsed. Select and Back never repeat.
func (d *Dispatcher) Tick(now time.Time) {
	for _, cmd := range d.Held() {
		if !cmd.Repeatable() {
			continue
		}
		h := d.held[cmd]
		if !h.repeating && now.Sub(h.startedAt) >= d.delay {
			h.repeating = true
		}
		if h.repeating && now.Sub(h.lastTriggerAt) >= d.interval {
			h.lastTriggerAt = now
			d.dispatch(cmd)
		}
	}
}

// Held returns the held commands in a stable order.
func (d *Dispatcher) Held() []command.Command {
	out := make([]command.Command, 0, len(d.held))
	for cmd := range d.held {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Flat() < out[j].Flat() })
	return out
}

// Dispatches counts commands sent into the tree so far.
func (d *Dispatcher) Dispatches() int { return d.dispatches }

// ReleaseAll forgets every held command, e.g. when the signal source closes.
func (d *Dispatcher) ReleaseAll() {
	clear(d.held)
}

func (d *Dispatcher) dispatch(cmd command.Command) {
	d.dispatches++
	ev := d.tree.HandleCommand(cmd)
	if !ev.IsNone() {
		d.tree.HandleEvent(ev)
		if d.onEvent != nil {
			d.onEvent(ev)
		}
	}
	if d.redraw != nil {
		d.redraw()
	}
}
