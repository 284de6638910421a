package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/SamWylde/Grant-Tracker-sub000/pkg/utils/logging"
)

// Dispatch runs a handler in a new goroutine detached from the caller's
// cancellation. The caller's logger is preserved; errors and panics are
// logged, never propagated, so a failing collaborator cannot corrupt the
// state of the request that spawned it.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
