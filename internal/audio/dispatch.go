package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Effyiex/dev-resp/internal/config"
)

// Speed and gain ranges for key sounds.
const (
	minSpeed   = 0.75
	speedRange = 0.5
	minGain    = 0.5 // multiples of the base volume
)

// Fixed toggle cues, as (speed, base volume multiple).
const (
	muteSpeed   = 0.75
	muteGain    = 0.75
	unmuteSpeed = 1.25
	unmuteGain  = 1.25
)

// DispatcherOptions configure a Dispatcher.
type DispatcherOptions struct {
	Player       Player
	Assets       Assets
	Rand         *rand.Rand
	BaseVolume   float64
	TogglePolicy config.TogglePolicy
	Logger       *slog.Logger
}

// Dispatcher picks playback parameters for each event and hands the matching
// asset to the player. It is not safe for concurrent use; the tick loop owns it.
type Dispatcher struct {
	player     Player
	assets     Assets
	rng        *rand.Rand
	baseVolume float64
	policy     config.TogglePolicy
	logger     *slog.Logger
}

// NewDispatcher validates options. A nil Rand is seeded from the clock.
func NewDispatcher(opts DispatcherOptions) (*Dispatcher, error) {
	if opts.Player == nil {
		return nil, errors.New("player must not be nil")
	}
	if opts.BaseVolume <= 0 {
		return nil, fmt.Errorf("base volume must be positive, got %g", opts.BaseVolume)
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		player:     opts.Player,
		assets:     opts.Assets,
		rng:        rng,
		baseVolume: opts.BaseVolume,
		policy:     opts.TogglePolicy,
		logger:     logger,
	}, nil
}

// RandomParams draws speed in [0.75, 1.25) and gain in
// [0.5, 1.5) times the base volume.
func (d *Dispatcher) RandomParams() Params {
	return Params{
		Speed: minSpeed + d.rng.Float64()*speedRange,
		Gain:  d.baseVolume * (d.rng.Float64() + minGain),
	}
}

// ToggleParams returns the cue for a mute (lower, quieter) or unmute
// (higher, louder) transition.
func (d *Dispatcher) ToggleParams(muting bool) Params {
	if d.policy == config.ToggleRandomized {
		return d.RandomParams()
	}
	if muting {
		return Params{Speed: muteSpeed, Gain: d.baseVolume * muteGain}
	}
	return Params{Speed: unmuteSpeed, Gain: d.baseVolume * unmuteGain}
}

// Press plays the key-down click.
func (d *Dispatcher) Press() {
	d.play(d.assets.Press, d.RandomParams())
}

// Release plays the key-up click.
func (d *Dispatcher) Release() {
	d.play(d.assets.Release, d.RandomParams())
}

// Toggle plays the mute/unmute cue.
func (d *Dispatcher) Toggle(muting bool) {
	d.play(d.assets.Toggle, d.ToggleParams(muting))
}

func (d *Dispatcher) play(a Asset, p Params) {
	err := d.player.Play(a, p)
	switch {
	case err == nil:
	case errors.Is(err, ErrBusy):
		d.logger.Debug("sound dropped", "sound", a.Name, "error", err)
	default:
		d.logger.Warn("sound failed", "sound", a.Name, "speed", p.Speed, "gain", p.Gain, "error", err)
	}
}
