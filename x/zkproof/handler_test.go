package zkproof

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/crosslocktest"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/store"
	"github.com/crosslock/crosslock/x/swap"
)

// rejectVerifier fails every proof.
type rejectVerifier struct{}

func (rejectVerifier) VerifyProof([]byte, []byte) bool {
	return false
}

type testEnv struct {
	db     crosslock.KVStore
	auth   *crosslocktest.CtxAuth
	bucket Bucket
	submit SubmitProofHandler
}

func newTestEnv(verifier Verifier) *testEnv {
	auth := &crosslocktest.CtxAuth{Key: "auth"}
	bucket := NewBucket()
	return &testEnv{
		db:     store.MemStore(),
		auth:   auth,
		bucket: bucket,
		submit: SubmitProofHandler{
			auth:     auth,
			bucket:   bucket,
			swaps:    swap.NewController(),
			verifier: verifier,
		},
	}
}

func (env *testEnv) ctx(height int64, signers ...crosslock.Address) crosslock.Context {
	ctx := crosslock.WithHeight(context.Background(), height)
	return env.auth.SetSigners(ctx, signers...)
}

func (env *testEnv) initiate(t *testing.T) ([]byte, *swap.Swap) {
	t.Helper()
	s := &swap.Swap{
		Initiator:        crosslocktest.NewAddress(),
		Participant:      crosslocktest.NewAddress(),
		Amount:           10000,
		HashLock:         crosslocktest.RandomBytes(swap.HashLockSize),
		TimeLock:         100,
		CreationHeight:   10,
		ExpirationHeight: 110,
		PrivacyLevel:     1,
	}
	swapID := swap.DeriveSwapID(s.Initiator, s.Participant, s.CreationHeight, s.HashLock)
	require.NoError(t, swap.NewController().Update(env.db, swapID, s))
	return swapID, s
}

func (env *testEnv) submitProof(t *testing.T, height int64, swapID, proof []byte, signer crosslock.Address) error {
	t.Helper()
	msg := &SubmitProofMsg{SwapID: swapID, Proof: proof}
	_, err := env.submit.Deliver(env.ctx(height, signer), env.db, &crosslocktest.Tx{Msg: msg})
	return err
}

func TestSubmitProof(t *testing.T) {
	env := newTestEnv(NonEmptyVerifier{})
	swapID, s := env.initiate(t)

	payload := crosslocktest.RandomBytes(128)
	require.NoError(t, env.submitProof(t, 20, swapID, payload, s.Initiator))

	proof, err := env.bucket.GetProof(env.db, swapID)
	require.NoError(t, err)
	require.NotNil(t, proof)
	assert.True(t, proof.Verified)
	assert.Equal(t, payload, proof.Proof)
	assert.Equal(t, int64(20), proof.Height)
}

func TestSubmitProofOverwrites(t *testing.T) {
	env := newTestEnv(NonEmptyVerifier{})
	swapID, s := env.initiate(t)

	require.NoError(t, env.submitProof(t, 20, swapID, crosslocktest.RandomBytes(128), s.Initiator))

	second := crosslocktest.RandomBytes(64)
	require.NoError(t, env.submitProof(t, 25, swapID, second, s.Participant))

	proof, err := env.bucket.GetProof(env.db, swapID)
	require.NoError(t, err)
	assert.Equal(t, second, proof.Proof)
	assert.Equal(t, int64(25), proof.Height)
}

func TestSubmitProofPreconditions(t *testing.T) {
	cases := map[string]struct {
		setup   func(t *testing.T, env *testEnv) (swapID []byte, signer crosslock.Address)
		wantErr *errors.Error
	}{
		"unknown swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				return crosslocktest.RandomBytes(swap.SwapIDSize), crosslocktest.NewAddress()
			},
			wantErr: errors.ErrSwapNotFound,
		},
		"stranger cannot submit": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, _ := env.initiate(t)
				return swapID, crosslocktest.NewAddress()
			},
			wantErr: errors.ErrUnauthorized,
		},
		"claimed swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, s := env.initiate(t)
				s.Claimed = true
				require.NoError(t, swap.NewController().Update(env.db, swapID, s))
				return swapID, s.Initiator
			},
			wantErr: errors.ErrAlreadyClaimed,
		},
		"refunded swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, s := env.initiate(t)
				s.Refunded = true
				require.NoError(t, swap.NewController().Update(env.db, swapID, s))
				return swapID, s.Initiator
			},
			wantErr: errors.ErrInvalidRefund,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newTestEnv(NonEmptyVerifier{})
			swapID, signer := tc.setup(t, env)
			err := env.submitProof(t, 20, swapID, crosslocktest.RandomBytes(128), signer)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestSubmitProofRejected(t *testing.T) {
	env := newTestEnv(rejectVerifier{})
	swapID, s := env.initiate(t)

	err := env.submitProof(t, 20, swapID, crosslocktest.RandomBytes(128), s.Initiator)
	assert.True(t, errors.ErrInvalidProof.Is(err), "unexpected error: %+v", err)

	// nothing stored
	proof, err := env.bucket.GetProof(env.db, swapID)
	require.NoError(t, err)
	assert.Nil(t, proof)
}
