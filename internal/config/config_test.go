package config

import (
	"testing"
	"time"

	"github.com/Effyiex/dev-resp/internal/keys"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 100*time.Microsecond, cfg.TickPeriod())
	require.Equal(t, ToggleDirectional, cfg.TogglePolicy)
	require.Equal(t, []keys.Code{keys.LControl, keys.LAlt, keys.Enter}, cfg.Combo)
}

func TestDefault_ReturnsIndependentSlices(t *testing.T) {
	a := Default()
	a.Combo[0] = keys.KeyQ
	a.Triggerless[0] = keys.KeyQ

	b := Default()
	require.Equal(t, keys.LControl, b.Combo[0])
	require.Equal(t, keys.LShift, b.Triggerless[0])
}

func TestTriggerlessSet(t *testing.T) {
	set := Default().TriggerlessSet()
	require.Equal(t, 6, set.Len())
	for _, c := range []keys.Code{keys.LShift, keys.RShift, keys.LControl, keys.RControl, keys.LAlt, keys.RAlt} {
		require.True(t, set.Has(c), "expected %s to be triggerless", c)
	}
	require.False(t, set.Has(keys.Enter))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }},
		{"negative volume", func(c *Config) { c.BaseVolume = -0.1 }},
		{"volume above one", func(c *Config) { c.BaseVolume = 1.5 }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"three channels", func(c *Config) { c.ChannelCount = 3 }},
		{"no concurrency", func(c *Config) { c.MaxConcurrentSounds = 0 }},
		{"unknown policy", func(c *Config) { c.TogglePolicy = TogglePolicy(9) }},
		{"empty combo", func(c *Config) { c.Combo = nil }},
		{"undefined combo key", func(c *Config) { c.Combo = []keys.Code{keys.LAlt, 0} }},
		{"undefined triggerless key", func(c *Config) { c.Triggerless = []keys.Code{0} }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestTickPeriod_NonPositiveRate(t *testing.T) {
	cfg := Default()
	cfg.TickRate = 0
	require.Zero(t, cfg.TickPeriod())
}

func TestNormalizeLogLevel(t *testing.T) {
	lvl, err := NormalizeLogLevel("  DEBUG ")
	require.NoError(t, err)
	require.Equal(t, "debug", lvl)

	lvl, err = NormalizeLogLevel("")
	require.NoError(t, err)
	require.Equal(t, LogLevel, lvl)

	_, err = NormalizeLogLevel("trace")
	require.Error(t, err)
}

func TestNormalizeFormat(t *testing.T) {
	f, err := NormalizeFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, "json", f)

	_, err = NormalizeFormat("yaml")
	require.Error(t, err)
}

func TestTogglePolicy_String(t *testing.T) {
	require.Equal(t, "directional", ToggleDirectional.String())
	require.Equal(t, "randomized", ToggleRandomized.String())
	require.Equal(t, "TogglePolicy(7)", TogglePolicy(7).String())
}
