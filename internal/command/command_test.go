package command

import "testing"

func TestFlatRoundTrip(t *testing.T) {
	for _, cmd := range All() {
		flat := cmd.Flat()
		if flat == 0 {
			t.Fatalf("%v has no flat form", cmd)
		}
		if got := FromFlat(flat); got != cmd {
			t.Errorf("FromFlat(%v) = %v, want %v", flat, got, cmd)
		}
	}
}

func TestParseFlat(t *testing.T) {
	tests := []struct {
		name string
		want Command
	}{
		{"up", Navigate(Up)},
		{" Down ", Navigate(Down)},
		{"LEFT", Navigate(Left)},
		{"right", Navigate(Right)},
		{"select", Act(Select)},
		{"back", Act(Back)},
	}
	for _, tt := range tests {
		f, err := ParseFlat(tt.name)
		if err != nil {
			t.Fatalf("ParseFlat(%q): %v", tt.name, err)
		}
		if got := FromFlat(f); got != tt.want {
			t.Errorf("ParseFlat(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if _, err := ParseFlat("jump"); err == nil {
		t.Error("ParseFlat(jump) should fail")
	}
}

func TestAccessors(t *testing.T) {
	nav := Navigate(Left)
	if d, ok := nav.Navigation(); !ok || d != Left {
		t.Errorf("Navigation() = %v, %v", d, ok)
	}
	if _, ok := nav.Action(); ok {
		t.Error("navigation command should not carry an action")
	}
	if !nav.Repeatable() {
		t.Error("navigation should repeat")
	}

	sel := Act(Select)
	if a, ok := sel.Action(); !ok || a != Select {
		t.Errorf("Action() = %v, %v", a, ok)
	}
	if sel.Repeatable() {
		t.Error("select must not repeat")
	}
	if Act(Back).Repeatable() {
		t.Error("back must not repeat")
	}
	if (Command{}).Valid() {
		t.Error("zero command should be invalid")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{None(), "None"},
		{SystemChanged(2), "SystemChanged(2)"},
		{GameChanged(7), "GameChanged(7)"},
		{LaunchGame(0, 1), "LaunchGame(0,1)"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if !(Event{}).IsNone() {
		t.Error("zero event should be None")
	}
}
