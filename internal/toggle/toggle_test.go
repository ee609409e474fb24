package toggle

import (
	"testing"

	"github.com/Effyiex/dev-resp/internal/keys"
	"github.com/stretchr/testify/require"
)

func defaultCombo() Combo {
	return NewCombo(keys.LControl, keys.LAlt, keys.Enter)
}

func TestNewCombo_Deduplicates(t *testing.T) {
	c := NewCombo(keys.LControl, keys.LAlt, keys.LControl, keys.Enter)
	require.Equal(t, 3, c.Len())
	require.Equal(t, []keys.Code{keys.LControl, keys.LAlt, keys.Enter}, c.Codes())
}

func TestCombo_Matches(t *testing.T) {
	c := defaultCombo()
	require.Equal(t, 0, c.Matches(keys.Set{}))
	require.Equal(t, 1, c.Matches(keys.NewSet(keys.LControl, keys.KeyA)))
	require.Equal(t, 3, c.Matches(keys.NewSet(keys.LControl, keys.LAlt, keys.Enter, keys.KeyA)))
}

func TestGate_Scenario(t *testing.T) {
	g := NewGate(defaultCombo())
	st := NewState()
	full := keys.NewSet(keys.LControl, keys.LAlt, keys.Enter)

	require.False(t, g.Update(keys.NewSet(keys.LControl), &st))
	require.Equal(t, 1, st.MatchCount)
	require.True(t, st.Active)

	require.True(t, g.Update(full, &st))
	require.Equal(t, 3, st.MatchCount)
	require.False(t, st.Active)

	require.False(t, g.Update(full, &st))
	require.False(t, st.Active)
}

func TestGate_DebounceWhileHeld(t *testing.T) {
	g := NewGate(defaultCombo())
	st := NewState()
	full := keys.NewSet(keys.LControl, keys.LAlt, keys.Enter)

	fired := 0
	for _, held := range []keys.Set{{}, full, full, full} {
		if g.Update(held, &st) {
			fired++
		}
	}
	require.Equal(t, 1, fired)
	require.False(t, st.Active)
}

func TestGate_RearmAfterPartialRelease(t *testing.T) {
	g := NewGate(defaultCombo())
	st := NewState()
	full := keys.NewSet(keys.LControl, keys.LAlt, keys.Enter)
	partial := keys.NewSet(keys.LControl, keys.LAlt)

	fired := 0
	for _, held := range []keys.Set{{}, full, partial, full} {
		if g.Update(held, &st) {
			fired++
		}
	}
	require.Equal(t, 2, fired)
	require.True(t, st.Active)
}

func TestGate_PreviousCountAlwaysUpdated(t *testing.T) {
	g := NewGate(defaultCombo())
	st := NewState()

	g.Update(keys.NewSet(keys.LAlt), &st)
	require.Equal(t, 1, st.PreviousMatchCount)
	g.Update(keys.NewSet(keys.LAlt, keys.Enter), &st)
	require.Equal(t, 2, st.PreviousMatchCount)
	g.Update(keys.Set{}, &st)
	require.Equal(t, 0, st.PreviousMatchCount)
}

func TestGate_ExtraKeysDoNotBlockToggle(t *testing.T) {
	g := NewGate(defaultCombo())
	st := NewState()

	require.True(t, g.Update(keys.NewSet(keys.LControl, keys.LAlt, keys.Enter, keys.KeyQ, keys.LShift), &st))
}

func TestGate_EmptyComboNeverToggles(t *testing.T) {
	g := NewGate(NewCombo())
	st := NewState()
	require.False(t, g.Update(keys.Set{}, &st))
	require.False(t, g.Update(keys.NewSet(keys.KeyA), &st))
	require.True(t, st.Active)
}
