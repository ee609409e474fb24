// Package config holds the fixed tuning of the daemon. There is no config
// file or environment override: Default is the configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Effyiex/dev-resp/internal/keys"
)

// Sampling.
const (
	TickRate = 10000 // Hz, 100µs nominal period
)

// Audio output.
const (
	SampleRate          = 44100
	ChannelCount        = 2
	BaseVolume          = 0.025
	MaxConcurrentSounds = 32
)

// Logging defaults.
const (
	LogLevel  = "info"
	LogFormat = "text"
)

// TogglePolicy selects how the mute/unmute confirmation sound is shaped.
type TogglePolicy int

const (
	// ToggleDirectional plays a low, quiet cue when muting and a high,
	// louder cue when unmuting.
	ToggleDirectional TogglePolicy = iota
	// ToggleRandomized uses the same random speed/gain as key sounds.
	ToggleRandomized
)

func (p TogglePolicy) String() string {
	switch p {
	case ToggleDirectional:
		return "directional"
	case ToggleRandomized:
		return "randomized"
	}
	return fmt.Sprintf("TogglePolicy(%d)", int(p))
}

// DefaultTriggerless are modifiers that never click on their own.
var DefaultTriggerless = []keys.Code{
	keys.LShift,
	keys.LControl,
	keys.LAlt,
	keys.RShift,
	keys.RControl,
	keys.RAlt,
}

// DefaultCombo is LControl+LAlt+Enter.
var DefaultCombo = []keys.Code{
	keys.LControl,
	keys.LAlt,
	keys.Enter,
}

// Logging configures the diagnostic logger.
type Logging struct {
	Level  string
	Format string
}

// Config is the complete runtime configuration.
type Config struct {
	TickRate            int
	BaseVolume          float64
	SampleRate          int
	ChannelCount        int
	MaxConcurrentSounds int
	TogglePolicy        TogglePolicy
	Triggerless         []keys.Code
	Combo               []keys.Code
	Logging             Logging
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickRate:            TickRate,
		BaseVolume:          BaseVolume,
		SampleRate:          SampleRate,
		ChannelCount:        ChannelCount,
		MaxConcurrentSounds: MaxConcurrentSounds,
		TogglePolicy:        ToggleDirectional,
		Triggerless:         append([]keys.Code(nil), DefaultTriggerless...),
		Combo:               append([]keys.Code(nil), DefaultCombo...),
		Logging: Logging{
			Level:  LogLevel,
			Format: LogFormat,
		},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", c.TickRate)
	}
	if c.BaseVolume <= 0 || c.BaseVolume > 1 {
		return fmt.Errorf("base volume must be in (0, 1], got %g", c.BaseVolume)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.ChannelCount != 1 && c.ChannelCount != 2 {
		return fmt.Errorf("channel count must be 1 or 2, got %d", c.ChannelCount)
	}
	if c.MaxConcurrentSounds <= 0 {
		return fmt.Errorf("max concurrent sounds must be positive, got %d", c.MaxConcurrentSounds)
	}
	switch c.TogglePolicy {
	case ToggleDirectional, ToggleRandomized:
	default:
		return fmt.Errorf("unknown toggle policy %s", c.TogglePolicy)
	}
	if len(c.Combo) == 0 {
		return errors.New("toggle combo must not be empty")
	}
	for _, code := range c.Combo {
		if code == 0 {
			return errors.New("toggle combo contains an undefined key")
		}
	}
	for _, code := range c.Triggerless {
		if code == 0 {
			return errors.New("triggerless set contains an undefined key")
		}
	}
	if _, err := NormalizeLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := NormalizeFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}

// TickPeriod is the nominal sleep between two samples.
func (c Config) TickPeriod() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// TriggerlessSet returns the triggerless keys as a set.
func (c Config) TriggerlessSet() keys.Set {
	return keys.NewSet(c.Triggerless...)
}

// NormalizeLogLevel lower-cases and checks a level name.
func NormalizeLogLevel(level string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if normalized == "" {
		return LogLevel, nil
	}
	switch normalized {
	case "debug", "info", "warn", "error":
		return normalized, nil
	}
	return "", fmt.Errorf("invalid log level %q", level)
}

// NormalizeFormat lower-cases and checks a log format name.
func NormalizeFormat(format string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		return LogFormat, nil
	}
	switch normalized {
	case "text", "json":
		return normalized, nil
	}
	return "", fmt.Errorf("invalid log format %q", format)
}
