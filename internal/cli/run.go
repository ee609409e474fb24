package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Effyiex/dev-resp/internal/audio"
	"github.com/Effyiex/dev-resp/internal/config"
	"github.com/Effyiex/dev-resp/internal/engine"
	"github.com/Effyiex/dev-resp/internal/keys"
	"github.com/Effyiex/dev-resp/internal/logging"
	"github.com/Effyiex/dev-resp/internal/toggle"
)

// Run starts the daemon with the built-in configuration, the default audio
// device and the global input hook. It returns when ctx ends or when startup
// fails; a missing audio device is reported as audio.ErrDeviceInit.
func Run(ctx context.Context) error {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	player, err := audio.NewOtoPlayer(audio.OtoOptions{
		SampleRate:    cfg.SampleRate,
		ChannelCount:  cfg.ChannelCount,
		MaxConcurrent: cfg.MaxConcurrentSounds,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	src := keys.NewHookSource(logger)
	src.Start(ctx)
	defer src.Stop()

	return runLoop(ctx, cfg, logger, player, src)
}

func runLoop(ctx context.Context, cfg config.Config, logger *slog.Logger, player audio.Player, src keys.Source) error {
	assets, err := audio.LoadAssets()
	if err != nil {
		return fmt.Errorf("load sounds: %w", err)
	}
	dispatcher, err := audio.NewDispatcher(audio.DispatcherOptions{
		Player:       player,
		Assets:       assets,
		BaseVolume:   cfg.BaseVolume,
		TogglePolicy: cfg.TogglePolicy,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("dispatcher: %w", err)
	}
	loop, err := engine.New(engine.Options{
		Source:      src,
		Dispatcher:  dispatcher,
		Combo:       toggle.NewCombo(cfg.Combo...),
		Triggerless: cfg.TriggerlessSet(),
		TickRate:    cfg.TickRate,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	logger.Info("devresp ready",
		"tick_rate", cfg.TickRate,
		"base_volume", cfg.BaseVolume,
		"toggle_policy", cfg.TogglePolicy.String(),
	)
	return loop.Run(ctx)
}
