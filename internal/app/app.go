package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/gauge/internal/config"
	"github.com/five82/gauge/internal/logging"
	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/prefs"
	"github.com/five82/gauge/internal/state"
	"github.com/five82/gauge/internal/ui"
)

// Options configure the gauge application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/gauge/prefs.toml
	LogPath    string // empty uses default under the user data dir
	PollEvery  time.Duration
}

// Run boots the gauge TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load pitstop config: %w", err)
	}

	log := logging.New(opts.LogPath)
	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := pitstop.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init pitstop client: %w", err)
	}

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = opts.PollEvery
	}

	// Populate the store before the UI draws its first frame, then keep it
	// fresh in the background.
	refresh(ctx, store, client, log)
	StartPoller(ctx, store, client, interval, log)

	log.Info().Str("api_bind", cfg.APIBind).Dur("interval", interval).Msg("gauge starting")

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Log:       log,
	}
	return ui.Run(uiOpts)
}
