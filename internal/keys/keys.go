// Package keys models physical key codes, held-key sets and the edge
// detection between two consecutive samples of keyboard state.
package keys

import (
	"fmt"
	"sort"
)

// Code identifies a physical key. Values are libuiohook virtual key codes,
// which is what the global hook reports.
type Code uint16

// Key codes used by the default configuration and diagnostics.
const (
	Escape    Code = 0x0001
	Backspace Code = 0x000E
	Tab       Code = 0x000F
	Enter     Code = 0x001C
	Space     Code = 0x0039
	CapsLock  Code = 0x003A
)

// Letters.
const (
	KeyQ Code = 0x0010
	KeyW Code = 0x0011
	KeyE Code = 0x0012
	KeyR Code = 0x0013
	KeyT Code = 0x0014
	KeyA Code = 0x001E
	KeyS Code = 0x001F
	KeyD Code = 0x0020
	KeyF Code = 0x0021
	KeyZ Code = 0x002C
	KeyX Code = 0x002D
	KeyC Code = 0x002E
	KeyV Code = 0x002F
)

// Modifiers.
const (
	LShift   Code = 0x002A
	RShift   Code = 0x0036
	LControl Code = 0x001D
	RControl Code = 0x0E1D
	LAlt     Code = 0x0038
	RAlt     Code = 0x0E38
	LMeta    Code = 0x0E5B
	RMeta    Code = 0x0E5C
)

var names = map[Code]string{
	Escape:    "Escape",
	Backspace: "Backspace",
	Tab:       "Tab",
	Enter:     "Enter",
	Space:     "Space",
	CapsLock:  "CapsLock",
	KeyQ:      "Q",
	KeyW:      "W",
	KeyE:      "E",
	KeyR:      "R",
	KeyT:      "T",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyF:      "F",
	KeyZ:      "Z",
	KeyX:      "X",
	KeyC:      "C",
	KeyV:      "V",
	LShift:    "LShift",
	RShift:    "RShift",
	LControl:  "LControl",
	RControl:  "RControl",
	LAlt:      "LAlt",
	RAlt:      "RAlt",
	LMeta:     "LMeta",
	RMeta:     "RMeta",
}

func (c Code) String() string {
	if name, ok := names[c]; ok {
		return name
	}
	return fmt.Sprintf("Key(0x%04X)", uint16(c))
}

// Set is a duplicate-free collection of held keys.
type Set map[Code]struct{}

// NewSet builds a set from the given codes.
func NewSet(codes ...Code) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func (s Set) Has(c Code) bool {
	_, ok := s[c]
	return ok
}

func (s Set) Add(c Code) { s[c] = struct{}{} }

func (s Set) Len() int { return len(s) }

// Clone returns an independent copy. A nil set clones to an empty one.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Codes returns the members in ascending order.
func (s Set) Codes() []Code {
	out := make([]Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sortCodes(out)
	return out
}

// Detect compares two samples and reports keys that went down (pressed) and
// keys that came up (released). Keys in excluded never appear in either list.
func Detect(current, previous, excluded Set) (pressed, released []Code) {
	for c := range current {
		if !previous.Has(c) && !excluded.Has(c) {
			pressed = append(pressed, c)
		}
	}
	for c := range previous {
		if !current.Has(c) && !excluded.Has(c) {
			released = append(released, c)
		}
	}
	sortCodes(pressed)
	sortCodes(released)
	return pressed, released
}

func sortCodes(codes []Code) {
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
}
