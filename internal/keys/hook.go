package keys

import (
	"context"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// HookSource tracks the globally held keys from the system-wide input hook.
// The hook pushes press and release events; HeldKeys turns them back into a
// pollable snapshot.
type HookSource struct {
	mu      sync.Mutex
	held    Set
	running bool

	logger *slog.Logger
	start  func() chan hook.Event
	end    func()
	done   chan struct{}
}

// NewHookSource returns a source backed by gohook. Call Start before polling.
func NewHookSource(logger *slog.Logger) *HookSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &HookSource{
		held:   Set{},
		logger: logger,
		start:  hook.Start,
		end:    hook.End,
	}
}

// Start registers the global hook and consumes its events until ctx is
// cancelled or Stop is called. Only one hook can be active per process.
func (s *HookSource) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.held = Set{}
	s.done = make(chan struct{})
	s.mu.Unlock()

	events := s.start()
	go s.consume(ctx, events, s.done)
}

// Stop ends the hook. It is safe to call more than once.
func (s *HookSource) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (s *HookSource) consume(ctx context.Context, events chan hook.Event, done chan struct{}) {
	defer func() {
		s.end()
		s.mu.Lock()
		s.running = false
		s.held = Set{}
		s.mu.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				s.logger.Warn("input hook channel closed")
				return
			}
			s.apply(ev)
		}
	}
}

func (s *HookSource) apply(ev hook.Event) {
	code := Code(ev.Keycode)
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ev.Kind {
	case hook.KeyHold:
		if code != 0 {
			s.held.Add(code)
		}
	case hook.KeyUp:
		delete(s.held, code)
	case hook.HookDisabled:
		s.held = Set{}
	}
}

// HeldKeys returns a copy of the keys currently held.
func (s *HookSource) HeldKeys() (Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil, ErrSourceNotStarted
	}
	return s.held.Clone(), nil
}
