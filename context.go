package crosslock

import (
	"context"
	"io/ioutil"

	"github.com/sirupsen/logrus"

	"github.com/crosslock/crosslock/errors"
)

// Context is just a standard context, the alias documents that the
// value travelled through the call environment setup.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
)

// DefaultLogger is used for all contexts that have not set anything
// themselves. It swallows all output so that library use stays silent.
var DefaultLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}()

// WithHeight sets the logical height for the call. The height is
// supplied by the host once per call and must never be overwritten, so
// this panics when a height was already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set in this context")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the logical height of the current call, ok is false
// when no height was provided.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// MustGetHeight is for handlers that cannot run without a height. The
// host always sets one, a missing height is a wiring error.
func MustGetHeight(ctx Context) int64 {
	val, ok := GetHeight(ctx)
	if !ok {
		panic(errors.Wrap(errors.ErrHuman, "no height in context"))
	}
	return val
}

// WithChainID sets the chain id for the call context.
func WithChainID(ctx Context, chainID string) Context {
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id, or an empty string if not set.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger attaches a logger to the context.
func WithLogger(ctx Context, logger logrus.FieldLogger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the context logger, falling back to DefaultLogger.
func GetLogger(ctx Context) logrus.FieldLogger {
	if logger, ok := ctx.Value(contextKeyLogger).(logrus.FieldLogger); ok {
		return logger
	}
	return DefaultLogger
}

// IsExpired returns true if the given absolute height is not in the
// future of the call. Expiration is inclusive, a deadline equal to the
// current height is already expired.
func IsExpired(ctx Context, height int64) bool {
	return height <= MustGetHeight(ctx)
}
