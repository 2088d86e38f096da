package async

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/propstack/notifykit/pkg/logger"
)

// Go runs fn in a detached goroutine. The caller never observes the outcome:
// a returned error is logged, and a panic is recovered and logged instead of
// crashing the process. This is the primitive behind fire-and-forget
// dispatch, where the business caller must not be blocked by delivery.
func Go(ctx context.Context, log *slog.Logger, component string, fn func(context.Context) error) {
	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.LogAttrs(ctx, slog.LevelError, "Recovered panic in detached task",
					logger.Component(component),
					logger.Error(fmt.Errorf("panic: %v", r)),
				)
			}
		}()

		if err := fn(ctx); err != nil {
			log.LogAttrs(ctx, slog.LevelError, "Detached task failed",
				logger.Component(component),
				logger.Error(err),
			)
		}
	}()
}
