package zkproof

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
	"github.com/crosslock/crosslock/x"
	"github.com/crosslock/crosslock/x/swap"
)

const submitProofCost int64 = 200

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r crosslock.Registry, auth x.Authenticator, verifier Verifier) {
	r.Handle(pathSubmitProof, SubmitProofHandler{
		auth:     auth,
		bucket:   NewBucket(),
		swaps:    swap.NewController(),
		verifier: verifier,
	})
}

// RegisterQuery will register this bucket as "/proofs".
func RegisterQuery(qr crosslock.QueryRouter) {
	NewBucket().Register("proofs", qr)
}

var _ crosslock.Handler = SubmitProofHandler{}

// SubmitProofHandler verifies and stores confidential proofs for
// pending swaps.
type SubmitProofHandler struct {
	auth     x.Authenticator
	bucket   Bucket
	swaps    swap.Controller
	verifier Verifier
}

func (h SubmitProofHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: submitProofCost}, nil
}

func (h SubmitProofHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	proof := &Proof{
		Proof:    msg.Proof,
		Verified: true,
		Height:   crosslock.MustGetHeight(ctx),
	}
	// a later submission overwrites the earlier record
	if err := h.bucket.Save(db, orm.NewSimpleObj(msg.SwapID, proof)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, nil
}

func (h SubmitProofHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*SubmitProofMsg, error) {
	var msg SubmitProofMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	s, err := h.swaps.Get(db, msg.SwapID)
	if err != nil {
		return nil, err
	}
	if signer := x.AnySigner(ctx, h.auth, s.Initiator, s.Participant); signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only swap parties can submit proofs")
	}
	if s.Claimed {
		return nil, errors.Wrap(errors.ErrAlreadyClaimed, "swap already claimed")
	}
	if s.Refunded {
		return nil, errors.Wrap(errors.ErrInvalidRefund, "swap already refunded")
	}
	swapEnc, err := s.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "encode swap")
	}
	if !h.verifier.VerifyProof(msg.Proof, swapEnc) {
		return nil, errors.Wrap(errors.ErrInvalidProof, "proof rejected")
	}
	return &msg, nil
}
