package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/engine"
	"github.com/rshade/ecotrack/internal/ledger"
	"github.com/rshade/ecotrack/internal/logging"
)

type clockKey struct{}

func withClock(ctx context.Context, now func() time.Time) context.Context {
	if now == nil {
		now = time.Now
	}
	return context.WithValue(ctx, clockKey{}, now)
}

// nowFrom returns the command clock's current time.
func nowFrom(ctx context.Context) time.Time {
	if ctx != nil {
		if now, ok := ctx.Value(clockKey{}).(func() time.Time); ok {
			return now()
		}
	}
	return time.Now()
}

// app is the per-invocation view of the user's data: the loaded store, an
// engine over its ledger and a fixed "now".
type app struct {
	ctx    context.Context
	store  *ledger.Store
	engine *engine.Engine
	now    time.Time
}

// openApp loads the state file named by the configuration.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := ledger.NewStore(config.GetStatePath())
	if err != nil {
		return nil, err
	}
	if loadErr := store.Load(); loadErr != nil {
		return nil, fmt.Errorf("loading state: %w", loadErr)
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "cli").
		Str("operation", "open_state").
		Str("path", store.FilePath()).
		Int("activities", store.Ledger().Len()).
		Msg("state loaded")

	return &app{
		ctx:    ctx,
		store:  store,
		engine: engine.New(store.Ledger()),
		now:    nowFrom(ctx),
	}, nil
}

// save records the current streak in the state and writes it to disk.
func (a *app) save() error {
	streak := a.engine.Streak(a.now)
	if err := a.store.Update(func(st *ledger.State) error {
		st.Streak = streak
		return nil
	}); err != nil {
		return err
	}
	if err := a.store.Save(); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// summary returns the engine summary for now.
func (a *app) summary() engine.Summary {
	return a.engine.Summary(a.ctx, a.now)
}
