package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/crosslocktest"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/store"
)

// panicHandler panics on every call.
type panicHandler struct{}

var _ crosslock.Handler = panicHandler{}

func (panicHandler) Check(crosslock.Context, crosslock.KVStore, crosslock.Tx) (*crosslock.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(crosslock.Context, crosslock.KVStore, crosslock.Tx) (*crosslock.DeliverResult, error) {
	panic("deliver panic")
}

func TestRecoveryTurnsPanicIntoError(t *testing.T) {
	r := NewRecovery()
	db := store.MemStore()

	_, err := r.Check(context.Background(), db, &crosslocktest.Tx{}, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err), "unexpected error: %+v", err)

	_, err = r.Deliver(context.Background(), db, &crosslocktest.Tx{}, panicHandler{})
	assert.True(t, errors.ErrPanic.Is(err), "unexpected error: %+v", err)
}
