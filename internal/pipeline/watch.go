package pipeline

import (
	"context"
	"time"

	"github.com/FocuswithJustin/gedvault/internal/config"
	"github.com/FocuswithJustin/gedvault/internal/logging"
	"github.com/FocuswithJustin/gedvault/internal/watch"
)

// Watch converts input once and then again after every change to it, until
// ctx is cancelled. A failed rebuild is logged and the previous vault is
// kept; only a failure of the first conversion is returned.
func Watch(ctx context.Context, cfg *config.Config, input string, debounce time.Duration, done func(*Report)) error {
	w, err := watch.New(input, debounce, func(ctx context.Context) error {
		runCtx := logging.WithRunID(ctx, logging.NewRunID())
		report, err := Run(runCtx, cfg, input)
		if err != nil {
			return err
		}
		if done != nil {
			done(report)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// The watch is registered before the first run so no change is missed.
	report, err := Run(ctx, cfg, input)
	if err != nil {
		w.Close()
		return err
	}
	if done != nil {
		done(report)
	}
	return w.Run(ctx)
}
