package input

import (
	"testing"

	"github.com/rook-computer/osiris/internal/command"
)

func mustKeymap(t *testing.T) *Keymap {
	t.Helper()
	km, err := NewKeymap(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return km
}

const testNode = "/dev/input/event0"

func newDecoder(t *testing.T) *decoder {
	return &decoder{keymap: mustKeymap(t), source: testNode}
}

func TestDecoderKeys(t *testing.T) {
	dec := newDecoder(t)

	got := dec.translate(rawEvent{Type: evKey, Code: KeyDown, Value: keyPressed})
	if len(got) != 1 || got[0] != (Signal{Control: Control{Device: Keyboard, Source: testNode, Code: KeyDown}, Command: command.Navigate(command.Down), Pressed: true}) {
		t.Errorf("press = %+v", got)
	}
	if got := dec.translate(rawEvent{Type: evKey, Code: KeyDown, Value: keyRepeated}); len(got) != 0 {
		t.Errorf("kernel autorepeat produced %+v", got)
	}
	got = dec.translate(rawEvent{Type: evKey, Code: KeyDown, Value: keyReleased})
	if len(got) != 1 || got[0].Pressed {
		t.Errorf("release = %+v", got)
	}
	if got := dec.translate(rawEvent{Type: evKey, Code: 62, Value: keyPressed}); len(got) != 0 {
		t.Errorf("unmapped key produced %+v", got)
	}
	got = dec.translate(rawEvent{Type: evKey, Code: BtnEast, Value: keyPressed})
	if len(got) != 1 || got[0].Control.Device != Gamepad || got[0].Command != command.Act(command.Back) {
		t.Errorf("gamepad button = %+v", got)
	}
	if got := dec.translate(rawEvent{Type: 0, Code: 0, Value: 0}); len(got) != 0 {
		t.Errorf("EV_SYN produced %+v", got)
	}
}

func TestDecoderHat(t *testing.T) {
	dec := newDecoder(t)
	left := command.Navigate(command.Left)
	right := command.Navigate(command.Right)
	hatLeft := Control{Device: Gamepad, Source: testNode, Code: absControl | AbsHat0X<<1}
	hatRight := Control{Device: Gamepad, Source: testNode, Code: absControl | AbsHat0X<<1 | 1}

	steps := []struct {
		value int32
		want  []Signal
	}{
		{-1, []Signal{{hatLeft, left, true}}},
		{-1, nil},
		{1, []Signal{{hatLeft, left, false}, {hatRight, right, true}}},
		{0, []Signal{{hatRight, right, false}}},
		{0, nil},
	}
	for i, step := range steps {
		got := dec.translate(rawEvent{Type: evAbs, Code: AbsHat0X, Value: step.value})
		if len(got) != len(step.want) {
			t.Fatalf("step %d: %+v, want %+v", i, got, step.want)
		}
		for j := range got {
			if got[j] != step.want[j] {
				t.Fatalf("step %d: %+v, want %+v", i, got, step.want)
			}
		}
	}

	got := dec.translate(rawEvent{Type: evAbs, Code: AbsHat0Y, Value: 1})
	if len(got) != 1 || got[0].Command != command.Navigate(command.Down) || !got[0].Pressed {
		t.Errorf("hat down = %+v", got)
	}
}

func TestDecoderReleasesHeldControls(t *testing.T) {
	dec := newDecoder(t)
	dec.translate(rawEvent{Type: evKey, Code: KeyEnter, Value: keyPressed})
	dec.translate(rawEvent{Type: evKey, Code: KeySpace, Value: keyPressed})
	dec.translate(rawEvent{Type: evKey, Code: KeySpace, Value: keyReleased})
	dec.translate(rawEvent{Type: evAbs, Code: AbsHat0Y, Value: 1})

	got := dec.releases()
	if len(got) != 2 {
		t.Fatalf("releases = %+v, want Enter and hat down", got)
	}
	want := map[Control]command.Command{
		{Device: Keyboard, Source: testNode, Code: KeyEnter}:                      command.Act(command.Select),
		{Device: Gamepad, Source: testNode, Code: absControl | AbsHat0Y<<1 | 1}: command.Navigate(command.Down),
	}
	for _, sig := range got {
		if sig.Pressed || want[sig.Control] != sig.Command {
			t.Errorf("unexpected release %+v", sig)
		}
	}
	if again := dec.releases(); len(again) != 0 {
		t.Errorf("second releases = %+v, want none", again)
	}
}
