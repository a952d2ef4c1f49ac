package treasury

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

type testEnv struct {
	db     crosslock.KVStore
	auth   *crosslocktest.CtxAuth
	bucket Bucket

	update   UpdateAdminHandler
	withdraw WithdrawFeesHandler
}

func newTestEnv(t *testing.T, admin crosslock.Address, balance uint64) *testEnv {
	t.Helper()
	auth := &crosslocktest.CtxAuth{Key: "auth"}
	bucket := NewBucket()
	env := &testEnv{
		db:       store.MemStore(),
		auth:     auth,
		bucket:   bucket,
		update:   UpdateAdminHandler{auth: auth, bucket: bucket},
		withdraw: WithdrawFeesHandler{auth: auth, bucket: bucket},
	}
	require.NoError(t, bucket.Save(env.db, &Treasury{Admin: admin, Balance: balance}))
	return env
}

func (env *testEnv) ctx(signers ...crosslock.Address) crosslock.Context {
	ctx := crosslock.WithHeight(context.Background(), 10)
	return env.auth.SetSigners(ctx, signers...)
}

func TestUpdateAdmin(t *testing.T) {
	admin := crosslocktest.NewAddress()
	successor := crosslocktest.NewAddress()
	env := newTestEnv(t, admin, 0)

	msg := &UpdateAdminMsg{NewAdmin: successor}

	// only the current admin can reassign
	_, err := env.update.Deliver(env.ctx(successor), env.db, &crosslocktest.Tx{Msg: msg})
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)

	_, err = env.update.Deliver(env.ctx(admin), env.db, &crosslocktest.Tx{Msg: msg})
	require.NoError(t, err)

	tr, err := env.bucket.GetTreasury(env.db)
	require.NoError(t, err)
	assert.Equal(t, successor, tr.Admin)

	// the old admin lost its rights
	_, err = env.update.Deliver(env.ctx(admin), env.db, &crosslocktest.Tx{Msg: &UpdateAdminMsg{NewAdmin: admin}})
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)
}

func TestWithdrawFees(t *testing.T) {
	admin := crosslocktest.NewAddress()
	env := newTestEnv(t, admin, 100)

	_, err := env.withdraw.Deliver(env.ctx(admin), env.db, &crosslocktest.Tx{Msg: &WithdrawFeesMsg{Amount: 60}})
	require.NoError(t, err)

	tr, err := env.bucket.GetTreasury(env.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(40), tr.Balance)

	// more than remains is refused
	_, err = env.withdraw.Deliver(env.ctx(admin), env.db, &crosslocktest.Tx{Msg: &WithdrawFeesMsg{Amount: 41}})
	assert.True(t, errors.ErrInsufficientFunds.Is(err), "unexpected error: %+v", err)

	// strangers are refused regardless of amount
	_, err = env.withdraw.Deliver(env.ctx(crosslocktest.NewAddress()), env.db, &crosslocktest.Tx{Msg: &WithdrawFeesMsg{Amount: 1}})
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)
}

func TestWithdrawWithoutAdmin(t *testing.T) {
	// fees can accrue before governance assigns an admin, but nobody
	// can withdraw them
	auth := &crosslocktest.CtxAuth{Key: "auth"}
	bucket := NewBucket()
	db := store.MemStore()
	controller := NewController(bucket)
	require.NoError(t, controller.Credit(db, 50))

	h := WithdrawFeesHandler{auth: auth, bucket: bucket}
	ctx := auth.SetSigners(crosslock.WithHeight(context.Background(), 10), crosslocktest.NewAddress())
	_, err := h.Deliver(ctx, db, &crosslocktest.Tx{Msg: &WithdrawFeesMsg{Amount: 10}})
	assert.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)
}

func TestControllerCredit(t *testing.T) {
	bucket := NewBucket()
	db := store.MemStore()
	controller := NewController(bucket)

	balance, err := controller.Balance(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	require.NoError(t, controller.Credit(db, 20))
	require.NoError(t, controller.Credit(db, 5))

	balance, err = controller.Balance(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), balance)
}
