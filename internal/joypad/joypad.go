// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Button represents a physical button on the Game Boy, as a bit
// of the mask supplied by the input source.
type Button = uint8

const (
	// ButtonStart is the Start button.
	ButtonStart Button = 1 << iota
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonB is the B button.
	ButtonB
	// ButtonA is the A button.
	ButtonA
	// ButtonDown is the Down button.
	ButtonDown
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonRight is the Right button.
	ButtonRight
)

const (
	selectDirections = types.Bit4
	selectActions    = types.Bit5
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds the currently pressed buttons, a set bit
	// is a pressed button.
	pressed Button
	// selection holds bits 4 and 5 of the last write.
	selection uint8

	irq *interrupts.Service
}

// New returns a new joypad with no buttons pressed.
func New(irq *interrupts.Service) *State {
	return &State{
		irq:       irq,
		selection: selectDirections | selectActions,
	}
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.Set(s.pressed | button)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.Set(s.pressed &^ button)
}

// Set replaces the set of pressed buttons with mask.
func (s *State) Set(mask Button) {
	before := s.lines()
	s.pressed = mask
	s.update(before)
}

// lines returns the input lines pulled low by pressed buttons in the
// selected groups.
func (s *State) lines() uint8 {
	var lines uint8
	if s.selection&selectDirections == 0 {
		lines |= directionLines(s.pressed)
	}
	if s.selection&selectActions == 0 {
		lines |= actionLines(s.pressed)
	}
	return lines
}

// update requests the joypad interrupt when an input line has gone
// from high to low since before was sampled.
func (s *State) update(before uint8) {
	if s.lines()&^before != 0 {
		s.irq.Request(interrupts.Joypad)
	}
}

// Pressed returns the mask of pressed buttons.
func (s *State) Pressed() Button {
	return s.pressed
}

// Read implements types.Register.
func (s *State) Read(address uint16) uint8 {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal read from address 0x%04X", address))
	}
	// pressed buttons pull their line low
	return 0xC0 | s.selection | (^s.lines() & 0x0F)
}

// Write implements types.Register.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal write to address 0x%04X", address))
	}
	before := s.lines()
	s.selection = value & (selectDirections | selectActions)
	s.update(before)
}

func directionLines(b Button) uint8 {
	var v uint8
	if b&ButtonRight != 0 {
		v |= types.Bit0
	}
	if b&ButtonLeft != 0 {
		v |= types.Bit1
	}
	if b&ButtonUp != 0 {
		v |= types.Bit2
	}
	if b&ButtonDown != 0 {
		v |= types.Bit3
	}
	return v
}

func actionLines(b Button) uint8 {
	var v uint8
	if b&ButtonA != 0 {
		v |= types.Bit0
	}
	if b&ButtonB != 0 {
		v |= types.Bit1
	}
	if b&ButtonSelect != 0 {
		v |= types.Bit2
	}
	if b&ButtonStart != 0 {
		v |= types.Bit3
	}
	return v
}
