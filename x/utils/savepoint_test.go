package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/crosslocktest"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/store"
)

// writingHandler writes a key and then optionally fails.
type writingHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ crosslock.Handler = writingHandler{}

func (h writingHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{}, h.err
}

func (h writingHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, h.err
}

func TestSavepointCommitsOnSuccess(t *testing.T) {
	db := store.MemStore()
	h := writingHandler{key: []byte("k"), value: []byte("v")}
	sp := NewSavepoint().OnDeliver()

	_, err := sp.Deliver(context.Background(), db, &crosslocktest.Tx{}, h)
	require.NoError(t, err)

	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestSavepointRollsBackOnFailure(t *testing.T) {
	db := store.MemStore()
	fail := errors.Wrap(errors.ErrState, "boom")
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: fail}
	sp := NewSavepoint().OnDeliver()

	_, err := sp.Deliver(context.Background(), db, &crosslocktest.Tx{}, h)
	assert.True(t, errors.ErrState.Is(err), "unexpected error: %+v", err)

	// the partial write did not survive
	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestSavepointInactiveWithoutTrigger(t *testing.T) {
	db := store.MemStore()
	fail := errors.Wrap(errors.ErrState, "boom")
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: fail}

	// deliver-only savepoint does not isolate checks
	sp := NewSavepoint().OnDeliver()
	_, err := sp.Check(context.Background(), db, &crosslocktest.Tx{}, h)
	assert.True(t, errors.ErrState.Is(err), "unexpected error: %+v", err)

	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), value)
}

func TestSavepointOnCheck(t *testing.T) {
	db := store.MemStore()
	fail := errors.Wrap(errors.ErrState, "boom")
	h := writingHandler{key: []byte("k"), value: []byte("v"), err: fail}

	sp := NewSavepoint().OnCheck()
	_, err := sp.Check(context.Background(), db, &crosslocktest.Tx{}, h)
	assert.True(t, errors.ErrState.Is(err), "unexpected error: %+v", err)

	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, value)
}
