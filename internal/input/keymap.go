package input

import (
	"fmt"
	"sort"

	"github.com/rook-computer/osiris/internal/command"
)

// Linux input-event-codes.h
const (
	KeyEsc       = 1
	KeyBackspace = 14
	KeyEnter     = 28
	KeySpace     = 57
	KeyUp        = 103
	KeyLeft      = 105
	KeyRight     = 106
	KeyDown      = 108

	BtnSouth     = 0x130
	BtnEast      = 0x131
	BtnStart     = 0x13b
	BtnDpadUp    = 0x220
	BtnDpadDown  = 0x221
	BtnDpadLeft  = 0x222
	BtnDpadRight = 0x223

	AbsHat0X = 0x10
	AbsHat0Y = 0x11
)

// btnMisc is the first button code; lower codes are keyboard keys.
const btnMisc = 0x100

// Bindings maps a command name (up, down, left, right, select, back) to the
// codes that trigger it.
type Bindings map[string][]uint16

func DefaultKeyboardBindings() Bindings {
	return Bindings{
		"up":     {KeyUp},
		"down":   {KeyDown},
		"left":   {KeyLeft},
		"right":  {KeyRight},
		"select": {KeyEnter, KeySpace},
		"back":   {KeyEsc, KeyBackspace},
	}
}

func DefaultGamepadBindings() Bindings {
	return Bindings{
		"up":     {BtnDpadUp},
		"down":   {BtnDpadDown},
		"left":   {BtnDpadLeft},
		"right":  {BtnDpadRight},
		"select": {BtnSouth, BtnStart},
		"back":   {BtnEast},
	}
}

type binding struct {
	device Device
	code   uint16
}

// Keymap resolves evdev key codes to commands.
type Keymap struct {
	codes map[binding]command.Command
}

// NewKeymap builds a keymap; nil bindings fall back to the defaults.
func NewKeymap(keyboard, gamepad Bindings) (*Keymap, error) {
	if keyboard == nil {
		keyboard = DefaultKeyboardBindings()
	}
	if gamepad == nil {
		gamepad = DefaultGamepadBindings()
	}
	km := &Keymap{codes: make(map[binding]command.Command)}
	if err := km.add(Keyboard, keyboard); err != nil {
		return nil, fmt.Errorf("keyboard bindings: %w", err)
	}
	if err := km.add(Gamepad, gamepad); err != nil {
		return nil, fmt.Errorf("gamepad bindings: %w", err)
	}
	return km, nil
}

func (km *Keymap) add(dev Device, b Bindings) error {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		flat, err := command.ParseFlat(name)
		if err != nil {
			return err
		}
		cmd := command.FromFlat(flat)
		for _, code := range b[name] {
			key := binding{device: dev, code: code}
			if prev, ok := km.codes[key]; ok && prev != cmd {
				return fmt.Errorf("code %d bound to both %s and %s", code, prev.Flat(), name)
			}
			km.codes[key] = cmd
		}
	}
	return nil
}

// Lookup returns the command bound to code on dev.
func (km *Keymap) Lookup(dev Device, code uint16) (command.Command, bool) {
	cmd, ok := km.codes[binding{device: dev, code: code}]
	return cmd, ok
}

// DeviceForCode classifies an EV_KEY code: button codes belong to gamepads.
func DeviceForCode(code uint16) Device {
	if code >= btnMisc {
		return Gamepad
	}
	return Keyboard
}
