package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/gauge/internal/pitstop"
	"github.com/five82/gauge/internal/state"
)

const defaultPollInterval = time.Second

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence. It returns immediately.
//
// The loop runs fetch → publish → wait, with the delay measured from
// completion of each attempt, so there is never more than one request in
// flight and the loop reschedules unconditionally — an unreachable daemon is
// polled at the same cadence forever. The fixed cadence with no backoff is
// deliberate: the daemon lives on localhost and the UI leans on fresh data.
func StartPoller(ctx context.Context, store *state.Store, client pitstop.StateFetcher, interval time.Duration, log zerolog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client, log)
			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}()
}

// refresh performs one poll attempt. On failure the store keeps its previous
// data; the error is recorded for the UI and logged, never surfaced as a
// blocking condition.
func refresh(ctx context.Context, store *state.Store, client pitstop.StateFetcher, log zerolog.Logger) {
	vehicleState, err := client.FetchState(ctx)
	if err != nil {
		store.Update(nil, err)
		log.Warn().Err(err).Msg("state poll failed")
		return
	}
	store.Update(vehicleState, nil)
}
