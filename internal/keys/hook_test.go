package keys

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/require"
)

func newTestHookSource(events chan hook.Event, ended *atomic.Bool) *HookSource {
	s := NewHookSource(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.start = func() chan hook.Event { return events }
	s.end = func() { ended.Store(true) }
	return s
}

func heldEquals(t *testing.T, s *HookSource, want Set) {
	t.Helper()
	require.Eventually(t, func() bool {
		got, err := s.HeldKeys()
		if err != nil {
			return false
		}
		if got.Len() != want.Len() {
			return false
		}
		for c := range want {
			if !got.Has(c) {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)
}

func TestHookSource_NotStarted(t *testing.T) {
	s := NewHookSource(nil)
	_, err := s.HeldKeys()
	require.ErrorIs(t, err, ErrSourceNotStarted)
}

func TestHookSource_TracksHoldAndRelease(t *testing.T) {
	events := make(chan hook.Event)
	var ended atomic.Bool
	s := newTestHookSource(events, &ended)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	events <- hook.Event{Kind: hook.KeyHold, Keycode: uint16(KeyA)}
	events <- hook.Event{Kind: hook.KeyHold, Keycode: uint16(LShift)}
	heldEquals(t, s, NewSet(KeyA, LShift))

	events <- hook.Event{Kind: hook.KeyUp, Keycode: uint16(KeyA)}
	heldEquals(t, s, NewSet(LShift))

	// Typed-character events carry no physical transition.
	events <- hook.Event{Kind: hook.KeyDown, Keycode: uint16(KeyS)}
	heldEquals(t, s, NewSet(LShift))
}

func TestHookSource_HookDisabledClearsHeld(t *testing.T) {
	events := make(chan hook.Event)
	var ended atomic.Bool
	s := newTestHookSource(events, &ended)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	events <- hook.Event{Kind: hook.KeyHold, Keycode: uint16(KeyA)}
	heldEquals(t, s, NewSet(KeyA))
	events <- hook.Event{Kind: hook.HookDisabled}
	heldEquals(t, s, Set{})
}

func TestHookSource_CancelEndsHook(t *testing.T) {
	events := make(chan hook.Event)
	var ended atomic.Bool
	s := newTestHookSource(events, &ended)

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	require.Eventually(t, ended.Load, time.Second, time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := s.HeldKeys()
		return err != nil
	}, time.Second, time.Millisecond)
}

func TestHookSource_StopEndsHook(t *testing.T) {
	events := make(chan hook.Event)
	var ended atomic.Bool
	s := newTestHookSource(events, &ended)

	s.Start(context.Background())
	s.Stop()
	s.Stop()

	require.Eventually(t, ended.Load, time.Second, time.Millisecond)
}
