package multisig

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
	"github.com/crosslock/crosslock/x"
	"github.com/crosslock/crosslock/x/swap"
)

const approveSwapCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r crosslock.Registry, auth x.Authenticator, verifier SignatureVerifier) {
	r.Handle(pathApproveSwap, ApproveSwapHandler{
		auth:     auth,
		bucket:   NewBucket(),
		swaps:    swap.NewController(),
		verifier: verifier,
	})
}

// RegisterQuery will register this bucket as "/approvals".
func RegisterQuery(qr crosslock.QueryRouter) {
	NewBucket().Register("approvals", qr)
}

var _ crosslock.Handler = ApproveSwapHandler{}

// ApproveSwapHandler records one approval and bumps the swap's counter
// on the first approval from each distinct signer.
type ApproveSwapHandler struct {
	auth     x.Authenticator
	bucket   Bucket
	swaps    swap.Controller
	verifier SignatureVerifier
}

func (h ApproveSwapHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: approveSwapCost}, nil
}

func (h ApproveSwapHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, s, signer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height := crosslock.MustGetHeight(ctx)

	existing, err := h.bucket.GetApproval(db, msg.SwapID, signer)
	if err != nil {
		return nil, err
	}
	approval := &Approval{Approved: true, Height: height}
	key := ApprovalKey(msg.SwapID, signer)
	if err := h.bucket.Save(db, orm.NewSimpleObj(key, approval)); err != nil {
		return nil, err
	}
	// only a first approval from this signer moves the counter
	if existing == nil {
		s.MultiSigProvided++
		if err := h.swaps.Update(db, msg.SwapID, s); err != nil {
			return nil, err
		}
	}
	return &crosslock.DeliverResult{}, nil
}

// validate loads the swap, checks that the caller is one of its two
// parties and that the swap can still change state, then runs the
// injected signature verifier.
func (h ApproveSwapHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*ApproveSwapMsg, *swap.Swap, crosslock.Address, error) {
	var msg ApproveSwapMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	s, err := h.swaps.Get(db, msg.SwapID)
	if err != nil {
		return nil, nil, nil, err
	}
	signer := x.AnySigner(ctx, h.auth, s.Initiator, s.Participant)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "only swap parties can approve")
	}
	if s.Claimed {
		return nil, nil, nil, errors.Wrap(errors.ErrAlreadyClaimed, "swap already claimed")
	}
	if s.Refunded {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidRefund, "swap already refunded")
	}
	if crosslock.IsExpired(ctx, s.ExpirationHeight) {
		return nil, nil, nil, errors.Wrapf(errors.ErrSwapExpired, "swap expired at height %d", s.ExpirationHeight)
	}
	if !h.verifier.VerifySignature(signer, msg.SwapID, msg.Signature) {
		return nil, nil, nil, errors.Wrap(errors.ErrInvalidSignature, "signature rejected")
	}
	return &msg, s, signer, nil
}
