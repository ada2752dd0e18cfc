package input

import (
	"testing"

	"github.com/rook-computer/osiris/internal/command"
)

func TestDefaultKeymap(t *testing.T) {
	km, err := NewKeymap(nil, nil)
	if err != nil {
		t.Fatalf("NewKeymap: %v", err)
	}
	tests := []struct {
		dev  Device
		code uint16
		want command.Command
	}{
		{Keyboard, KeyUp, command.Navigate(command.Up)},
		{Keyboard, KeyDown, command.Navigate(command.Down)},
		{Keyboard, KeyLeft, command.Navigate(command.Left)},
		{Keyboard, KeyRight, command.Navigate(command.Right)},
		{Keyboard, KeySpace, command.Act(command.Select)},
		{Keyboard, KeyEnter, command.Act(command.Select)},
		{Keyboard, KeyEsc, command.Act(command.Back)},
		{Gamepad, BtnDpadLeft, command.Navigate(command.Left)},
		{Gamepad, BtnSouth, command.Act(command.Select)},
		{Gamepad, BtnEast, command.Act(command.Back)},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.dev, tt.code)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%v, %d) = %v, %v; want %v", tt.dev, tt.code, got, ok, tt.want)
		}
	}
	if _, ok := km.Lookup(Keyboard, 62); ok {
		t.Error("F4 should be unmapped")
	}
	if _, ok := km.Lookup(Gamepad, KeyUp); ok {
		t.Error("keyboard codes must not resolve on the gamepad")
	}
}

func TestNewKeymapErrors(t *testing.T) {
	if _, err := NewKeymap(Bindings{"jump": {1}}, nil); err == nil {
		t.Error("unknown command name accepted")
	}
	if _, err := NewKeymap(Bindings{"up": {5}, "down": {5}}, nil); err == nil {
		t.Error("one code bound to two commands accepted")
	}
	km, err := NewKeymap(Bindings{"select": {30, 30}}, Bindings{})
	if err != nil {
		t.Fatalf("duplicate code for one command: %v", err)
	}
	if _, ok := km.Lookup(Gamepad, BtnSouth); ok {
		t.Error("empty gamepad bindings still mapped BTN_SOUTH")
	}
}

func TestDeviceForCode(t *testing.T) {
	if DeviceForCode(KeyEnter) != Keyboard || DeviceForCode(BtnSouth) != Gamepad || DeviceForCode(BtnDpadUp) != Gamepad {
		t.Error("misclassified codes")
	}
}
