package utils

import (
	"time"

	"github.com/crosslock/crosslock"
)

// Logging is a decorator to log operations as they pass through.
type Logging struct{}

var _ crosslock.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> warn, success -> debug.
func (l Logging) Check(ctx crosslock.Context, store crosslock.KVStore, tx crosslock.Tx, next crosslock.Checker) (*crosslock.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logCall(ctx, tx, start, err, true)
	return res, err
}

// Deliver logs error -> warn, success -> info.
func (l Logging) Deliver(ctx crosslock.Context, store crosslock.KVStore, tx crosslock.Tx, next crosslock.Deliverer) (*crosslock.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logCall(ctx, tx, start, err, false)
	return res, err
}

func logCall(ctx crosslock.Context, tx crosslock.Tx, start time.Time, err error, lowPrio bool) {
	logger := crosslock.GetLogger(ctx).WithField("path", crosslock.GetPath(tx)).
		WithField("duration", time.Since(start))
	if height, ok := crosslock.GetHeight(ctx); ok {
		logger = logger.WithField("height", height)
	}

	switch {
	case err != nil:
		logger.WithError(err).Warn("operation failed")
	case lowPrio:
		logger.Debug("operation checked")
	default:
		logger.Info("operation delivered")
	}
}
