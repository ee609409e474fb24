// Package engine runs the fixed-rate sampling loop that turns keyboard state
// into click sounds.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Effyiex/dev-resp/internal/keys"
	"github.com/Effyiex/dev-resp/internal/toggle"
)

// Dispatcher plays the sounds chosen by the loop. *audio.Dispatcher
// satisfies it.
type Dispatcher interface {
	Press()
	Release()
	Toggle(muting bool)
}

// Options configure a Loop.
type Options struct {
	Source      keys.Source
	Dispatcher  Dispatcher
	Combo       toggle.Combo
	Triggerless keys.Set
	TickRate    int
	Sleeper     func(context.Context, time.Duration) error
	Logger      *slog.Logger
}

// TickResult describes what one tick did.
type TickResult struct {
	Toggled  bool
	Active   bool
	Pressed  []keys.Code
	Released []keys.Code
}

// Loop owns all cross-tick state: the previous sample and the toggle state.
// It is driven from a single goroutine.
type Loop struct {
	source      keys.Source
	dispatcher  Dispatcher
	gate        *toggle.Gate
	triggerless keys.Set
	period      time.Duration
	sleeper     func(context.Context, time.Duration) error
	logger      *slog.Logger

	state    toggle.State
	previous keys.Set
}

// New validates options and returns a loop in the active state.
func New(opts Options) (*Loop, error) {
	if opts.Source == nil {
		return nil, errors.New("key source must not be nil")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("dispatcher must not be nil")
	}
	if opts.TickRate <= 0 {
		return nil, errors.New("tick rate must be positive")
	}
	if opts.Combo.Len() == 0 {
		return nil, errors.New("toggle combo must not be empty")
	}
	sleeper := opts.Sleeper
	if sleeper == nil {
		sleeper = defaultSleeper
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	triggerless := opts.Triggerless.Clone()
	return &Loop{
		source:      opts.Source,
		dispatcher:  opts.Dispatcher,
		gate:        toggle.NewGate(opts.Combo),
		triggerless: triggerless,
		period:      time.Second / time.Duration(opts.TickRate),
		sleeper:     sleeper,
		logger:      logger,
		state:       toggle.NewState(),
		previous:    keys.Set{},
	}, nil
}

// Period is the nominal time between ticks.
func (l *Loop) Period() time.Duration { return l.period }

// State returns a copy of the toggle state.
func (l *Loop) State() toggle.State { return l.state }

// Prime takes the first sample as the baseline so keys already held at
// startup do not click.
func (l *Loop) Prime() {
	held, err := l.source.HeldKeys()
	if err != nil {
		l.logger.Debug("initial key query failed", "error", err)
		return
	}
	l.previous = held
}

// Tick samples the keyboard once, updates the toggle and, while active,
// dispatches a sound for every press and release.
func (l *Loop) Tick() TickResult {
	current, err := l.source.HeldKeys()
	if err != nil {
		l.logger.Debug("key query failed, reusing previous sample", "error", err)
		current = l.previous.Clone()
	}

	res := TickResult{}
	if l.gate.Update(current, &l.state) {
		res.Toggled = true
		// Active has already flipped, so muting means it is now false.
		l.dispatcher.Toggle(!l.state.Active)
		l.logger.Info("toggled", "active", l.state.Active)
	}
	res.Active = l.state.Active

	if l.state.Active {
		res.Pressed, res.Released = keys.Detect(current, l.previous, l.triggerless)
		for range res.Pressed {
			l.dispatcher.Press()
		}
		for range res.Released {
			l.dispatcher.Release()
		}
	}

	l.previous = current
	return res
}

// Run primes the loop and ticks at the configured rate until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("sampling started", "period", l.period, "active", l.state.Active)
	l.Prime()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Tick()
		if err := l.sleeper(ctx, l.period); err != nil {
			return err
		}
	}
}

func defaultSleeper(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
