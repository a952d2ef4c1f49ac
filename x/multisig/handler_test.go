package multisig

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
	"github.com/crosslock/crosslock/x/treasury"
)

// rejectVerifier fails every signature.
type rejectVerifier struct{}

func (rejectVerifier) VerifySignature(crosslock.Address, []byte, []byte) bool {
	return false
}

type testEnv struct {
	db     crosslock.KVStore
	auth   *crosslocktest.CtxAuth
	bucket Bucket
	swaps  swap.Bucket

	approve ApproveSwapHandler
	claim   swap.ClaimSwapHandler
}

func newTestEnv(verifier SignatureVerifier) *testEnv {
	auth := &crosslocktest.CtxAuth{Key: "auth"}
	env := &testEnv{
		db:     store.MemStore(),
		auth:   auth,
		bucket: NewBucket(),
		swaps:  swap.NewBucket(),
	}
	env.approve = ApproveSwapHandler{
		auth:     auth,
		bucket:   env.bucket,
		swaps:    swap.NewController(),
		verifier: verifier,
	}

	reg := registry{}
	swap.RegisterRoutes(reg, auth, treasury.NewController(treasury.NewBucket()))
	env.claim = reg["swap/claim"].(swap.ClaimSwapHandler)
	return env
}

// registry collects handlers by path so tests can reuse the package
// level wiring.
type registry map[string]crosslock.Handler

func (r registry) Handle(path string, h crosslock.Handler) {
	r[path] = h
}

func (env *testEnv) ctx(height int64, signers ...crosslock.Address) crosslock.Context {
	ctx := crosslock.WithHeight(context.Background(), height)
	return env.auth.SetSigners(ctx, signers...)
}

// initiate stores a gated swap directly and returns its id together
// with the preimage that claims it.
func (env *testEnv) initiate(t *testing.T, required uint32) (swapID, preimage []byte, s *swap.Swap) {
	t.Helper()
	preimage = crosslocktest.RandomBytes(swap.PreimageSize)
	s = &swap.Swap{
		Initiator:        crosslocktest.NewAddress(),
		Participant:      crosslocktest.NewAddress(),
		Amount:           10000,
		HashLock:         swap.HashBytes(preimage),
		TimeLock:         100,
		CreationHeight:   10,
		ExpirationHeight: 110,
		MultiSigRequired: required,
	}
	swapID = swap.DeriveSwapID(s.Initiator, s.Participant, s.CreationHeight, s.HashLock)
	require.NoError(t, swap.NewController().Update(env.db, swapID, s))
	return swapID, preimage, s
}

func (env *testEnv) approveSwap(t *testing.T, height int64, swapID []byte, signer crosslock.Address) error {
	t.Helper()
	msg := &ApproveSwapMsg{SwapID: swapID, Signature: crosslocktest.RandomBytes(SignatureSize)}
	_, err := env.approve.Deliver(env.ctx(height, signer), env.db, &crosslocktest.Tx{Msg: msg})
	return err
}

func TestApprovalQuorumGatesClaim(t *testing.T) {
	env := newTestEnv(AcceptAllVerifier{})
	swapID, preimage, s := env.initiate(t, 2)

	claim := &swap.ClaimSwapMsg{SwapID: swapID, Preimage: preimage}

	// one approval is not enough
	require.NoError(t, env.approveSwap(t, 20, swapID, s.Initiator))
	_, err := env.claim.Deliver(env.ctx(21, s.Participant), env.db, &crosslocktest.Tx{Msg: claim})
	assert.True(t, errors.ErrInvalidSignature.Is(err), "unexpected error: %+v", err)

	// the second approval completes the quorum
	require.NoError(t, env.approveSwap(t, 22, swapID, s.Participant))
	_, err = env.claim.Deliver(env.ctx(23, s.Participant), env.db, &crosslocktest.Tx{Msg: claim})
	require.NoError(t, err)

	got, err := env.approve.swaps.Get(env.db, swapID)
	require.NoError(t, err)
	assert.True(t, got.Claimed)
	assert.Equal(t, uint32(2), got.MultiSigProvided)
}

func TestRepeatApprovalDoesNotInflateCounter(t *testing.T) {
	env := newTestEnv(AcceptAllVerifier{})
	swapID, _, s := env.initiate(t, 2)

	require.NoError(t, env.approveSwap(t, 20, swapID, s.Initiator))
	require.NoError(t, env.approveSwap(t, 25, swapID, s.Initiator))

	got, err := env.approve.swaps.Get(env.db, swapID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.MultiSigProvided)

	// the repeat refreshed the recorded height
	approval, err := env.bucket.GetApproval(env.db, swapID, s.Initiator)
	require.NoError(t, err)
	require.NotNil(t, approval)
	assert.Equal(t, int64(25), approval.Height)
}

func TestApprovePreconditions(t *testing.T) {
	cases := map[string]struct {
		setup   func(t *testing.T, env *testEnv) (swapID []byte, signer crosslock.Address)
		height  int64
		wantErr *errors.Error
	}{
		"unknown swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				return crosslocktest.RandomBytes(swap.SwapIDSize), crosslocktest.NewAddress()
			},
			height:  20,
			wantErr: errors.ErrSwapNotFound,
		},
		"stranger cannot approve": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, _, _ := env.initiate(t, 2)
				return swapID, crosslocktest.NewAddress()
			},
			height:  20,
			wantErr: errors.ErrUnauthorized,
		},
		"claimed swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, _, s := env.initiate(t, 2)
				s.Claimed = true
				require.NoError(t, swap.NewController().Update(env.db, swapID, s))
				return swapID, s.Initiator
			},
			height:  20,
			wantErr: errors.ErrAlreadyClaimed,
		},
		"refunded swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, _, s := env.initiate(t, 2)
				s.Refunded = true
				require.NoError(t, swap.NewController().Update(env.db, swapID, s))
				return swapID, s.Initiator
			},
			height:  20,
			wantErr: errors.ErrInvalidRefund,
		},
		"expired swap": {
			setup: func(t *testing.T, env *testEnv) ([]byte, crosslock.Address) {
				swapID, _, s := env.initiate(t, 2)
				return swapID, s.Initiator
			},
			height:  110,
			wantErr: errors.ErrSwapExpired,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newTestEnv(AcceptAllVerifier{})
			swapID, signer := tc.setup(t, env)
			err := env.approveSwap(t, tc.height, swapID, signer)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestApproveRejectedSignature(t *testing.T) {
	env := newTestEnv(rejectVerifier{})
	swapID, _, s := env.initiate(t, 2)

	err := env.approveSwap(t, 20, swapID, s.Initiator)
	assert.True(t, errors.ErrInvalidSignature.Is(err), "unexpected error: %+v", err)

	// nothing was recorded
	approval, err := env.bucket.GetApproval(env.db, swapID, s.Initiator)
	require.NoError(t, err)
	assert.Nil(t, approval)
}
