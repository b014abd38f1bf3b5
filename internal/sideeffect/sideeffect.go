package sideeffect

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds every secondary-effect call so a slow sink cannot
// hold up the primary operation's response.
const DefaultTimeout = 3 * time.Second

// Run executes fn as a secondary effect: the call gets a bounded timeout and
// any failure is logged and swallowed. The primary state change has already
// been committed when Run is called, so fn's outcome must never reach the
// caller as an error.
func Run(ctx context.Context, logger *zap.Logger, name string, fn func(ctx context.Context) error) {
	if logger == nil {
		logger = zap.L()
	}

	effectCtx, cancel := context.WithTimeout(withoutCancel(ctx), DefaultTimeout)
	defer cancel()

	if err := fn(effectCtx); err != nil {
		logger.Error("secondary effect failed",
			zap.String("effect", name),
			zap.Error(err),
		)
		return
	}
	logger.Debug("secondary effect done", zap.String("effect", name))
}

// withoutCancel detaches the effect from the request's cancellation while
// keeping its values (request id, user id) for logging and tracing.
func withoutCancel(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
