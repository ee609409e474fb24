// Package toggle implements the mute/unmute key combination.
package toggle

import "github.com/Effyiex/dev-resp/internal/keys"

// Combo is the set of keys that must be held together to flip the mute state.
// Order is irrelevant; only the count of held members matters.
type Combo struct {
	codes []keys.Code
}

// NewCombo builds a combo, dropping repeated codes.
func NewCombo(codes ...keys.Code) Combo {
	seen := keys.Set{}
	out := make([]keys.Code, 0, len(codes))
	for _, c := range codes {
		if seen.Has(c) {
			continue
		}
		seen.Add(c)
		out = append(out, c)
	}
	return Combo{codes: out}
}

// Len is the number of distinct keys in the combo.
func (c Combo) Len() int { return len(c.codes) }

// Codes returns a copy of the combo keys in configuration order.
func (c Combo) Codes() []keys.Code {
	return append([]keys.Code(nil), c.codes...)
}

// Matches counts how many combo keys are in held.
func (c Combo) Matches(held keys.Set) int {
	n := 0
	for _, code := range c.codes {
		if held.Has(code) {
			n++
		}
	}
	return n
}

// State is the toggle bookkeeping carried from one tick to the next.
type State struct {
	MatchCount         int
	PreviousMatchCount int
	Active             bool
}

// NewState returns the startup state: sounds active, nothing matched.
func NewState() State {
	return State{Active: true}
}

// Gate detects the rising edge into "every combo key held".
type Gate struct {
	combo Combo
}

func NewGate(combo Combo) *Gate {
	return &Gate{combo: combo}
}

func (g *Gate) Combo() Combo { return g.combo }

// Update recounts the combo against held, flips st.Active on a rising edge
// and reports whether it did. The count only fires when it changes into the
// full match, so holding the combo does not retrigger.
func (g *Gate) Update(held keys.Set, st *State) bool {
	n := g.combo.Matches(held)
	st.MatchCount = n

	toggled := g.combo.Len() > 0 && n >= g.combo.Len() && n != st.PreviousMatchCount
	if toggled {
		st.Active = !st.Active
	}
	st.PreviousMatchCount = n
	return toggled
}
