package audio

import (
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

// Player starts playback of an asset and returns without waiting for it to
// finish. Implementations must allow many clips to overlap.
type Player interface {
	Play(a Asset, p Params) error
}

// PlayerFunc adapts a function literal to the Player interface.
type PlayerFunc func(a Asset, p Params) error

// Play calls the underlying function.
func (f PlayerFunc) Play(a Asset, p Params) error { return f(a, p) }

// NoopPlayer discards every sound.
type NoopPlayer struct{}

func (NoopPlayer) Play(Asset, Params) error { return nil }

// OtoOptions configure the output device.
type OtoOptions struct {
	SampleRate    int
	ChannelCount  int
	MaxConcurrent int
	Logger        *slog.Logger
}

// OtoPlayer renders clips and hands them to an oto context, one oto player
// per sound.
type OtoPlayer struct {
	ctx           *oto.Context
	sampleRate    int
	channels      int
	maxConcurrent int32
	active        atomic.Int32
	logger        *slog.Logger
}

// NewOtoPlayer opens the default output device. Failure wraps ErrDeviceInit.
func NewOtoPlayer(opts OtoOptions) (*OtoPlayer, error) {
	if opts.SampleRate <= 0 || opts.ChannelCount < 1 || opts.ChannelCount > 2 {
		return nil, fmt.Errorf("%w: invalid format %d Hz x %d", ErrDeviceInit, opts.SampleRate, opts.ChannelCount)
	}
	if opts.MaxConcurrent <= 0 {
		return nil, fmt.Errorf("%w: max concurrent sounds must be positive", ErrDeviceInit)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx, ready, err := oto.NewContext(opts.SampleRate, opts.ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceInit, err)
	}
	<-ready
	return &OtoPlayer{
		ctx:           ctx,
		sampleRate:    opts.SampleRate,
		channels:      opts.ChannelCount,
		maxConcurrent: int32(opts.MaxConcurrent),
		logger:        logger,
	}, nil
}

// Play renders a with p and starts it in the background. Sounds beyond the
// concurrency limit are dropped with ErrBusy.
func (o *OtoPlayer) Play(a Asset, p Params) error {
	if o.active.Add(1) > o.maxConcurrent {
		o.active.Add(-1)
		return ErrBusy
	}
	samples, err := Render(a, p, o.sampleRate, o.channels)
	if err != nil {
		o.active.Add(-1)
		return err
	}
	if len(samples) == 0 {
		o.active.Add(-1)
		return nil
	}
	go o.playAsync(a.Name, samples)
	return nil
}

// Active reports how many sounds are currently playing.
func (o *OtoPlayer) Active() int { return int(o.active.Load()) }

func (o *OtoPlayer) playAsync(name string, samples []byte) {
	defer o.active.Add(-1)
	player := o.ctx.NewPlayer(&soundReader{data: samples})
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	if err := player.Err(); err != nil {
		o.logger.Warn("sound playback failed", "sound", name, "error", fmt.Errorf("%w: %v", ErrPlayback, err))
	}
	if err := player.Close(); err != nil {
		o.logger.Debug("close player", "sound", name, "error", err)
	}
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
