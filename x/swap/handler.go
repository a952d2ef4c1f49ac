package swap

import (
	"bytes"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
	"github.com/crosslock/crosslock/x"
	"github.com/crosslock/crosslock/x/treasury"
)

const (
	createSwapCost int64 = 300
	claimSwapCost  int64 = 100
	refundSwapCost int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r crosslock.Registry, auth x.Authenticator, tc treasury.Controller) {
	bucket := NewBucket()
	r.Handle(pathCreateSwap, CreateSwapHandler{auth: auth, bucket: bucket, treasury: tc})
	r.Handle(pathClaimSwap, ClaimSwapHandler{auth: auth, bucket: bucket})
	r.Handle(pathRefundSwap, RefundSwapHandler{auth: auth, bucket: bucket})
}

// RegisterQuery will register this bucket as "/swaps".
func RegisterQuery(qr crosslock.QueryRouter) {
	NewBucket().Register("swaps", qr)
}

//---------- create

var _ crosslock.Handler = CreateSwapHandler{}

// CreateSwapHandler opens a new swap and credits the protocol fee to
// the treasury.
type CreateSwapHandler struct {
	auth     x.Authenticator
	bucket   Bucket
	treasury treasury.Controller
}

func (h CreateSwapHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: createSwapCost}, nil
}

func (h CreateSwapHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height := crosslock.MustGetHeight(ctx)

	swapID := DeriveSwapID(msg.Initiator, msg.Participant, height, msg.HashLock)
	switch existing, err := h.bucket.GetSwap(db, swapID); {
	case err != nil:
		return nil, err
	case existing != nil:
		return nil, errors.Wrapf(errors.ErrSwapExists, "%X", swapID)
	}

	swapFee, err := treasury.Fee(msg.Amount, SwapFeeRate)
	if err != nil {
		return nil, errors.Wrap(err, "swap fee")
	}
	protocolFee, err := treasury.Fee(msg.Amount, ProtocolFeeRate)
	if err != nil {
		return nil, errors.Wrap(err, "protocol fee")
	}
	if err := h.treasury.Credit(db, protocolFee); err != nil {
		return nil, errors.Wrap(err, "credit treasury")
	}

	swap := &Swap{
		Initiator:        msg.Initiator,
		Participant:      msg.Participant,
		Amount:           msg.Amount,
		HashLock:         msg.HashLock,
		TimeLock:         msg.TimeLock,
		CreationHeight:   height,
		ExpirationHeight: height + msg.TimeLock,
		SwapToken:        msg.SwapToken,
		TargetChain:      msg.TargetChain,
		TargetAddress:    msg.TargetAddress,
		SwapFee:          swapFee,
		ProtocolFee:      protocolFee,
		MultiSigRequired: msg.MultiSigRequired,
		PrivacyLevel:     msg.PrivacyLevel,
	}
	if err := h.bucket.Save(db, orm.NewSimpleObj(swapID, swap)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{Data: swapID}, nil
}

// validate performs the stateless checks and authenticates the
// initiator.
func (h CreateSwapHandler) validate(ctx crosslock.Context, tx crosslock.Tx) (*CreateSwapMsg, error) {
	var msg CreateSwapMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Initiator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "initiator did not sign")
	}
	return &msg, nil
}

//---------- claim

var _ crosslock.Handler = ClaimSwapHandler{}

// ClaimSwapHandler releases a swap to its participant against the
// revealed preimage.
type ClaimSwapHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h ClaimSwapHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: claimSwapCost}, nil
}

func (h ClaimSwapHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	swap.Claimed = true
	swap.Preimage = msg.Preimage
	if err := h.bucket.Save(db, orm.NewSimpleObj(msg.SwapID, swap)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, nil
}

// validate runs the full claim precondition chain. The first failing
// check decides the returned error kind.
func (h ClaimSwapHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*ClaimSwapMsg, *Swap, error) {
	var msg ClaimSwapMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	swap, err := h.bucket.GetSwap(db, msg.SwapID)
	if err != nil {
		return nil, nil, err
	}
	if swap == nil {
		return nil, nil, errors.Wrapf(errors.ErrSwapNotFound, "%X", msg.SwapID)
	}
	if !h.auth.HasAddress(ctx, swap.Participant) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the participant can claim")
	}
	if swap.Claimed {
		return nil, nil, errors.Wrap(errors.ErrAlreadyClaimed, "swap already claimed")
	}
	if swap.Refunded {
		return nil, nil, errors.Wrap(errors.ErrInvalidRefund, "swap already refunded")
	}
	if !bytes.Equal(HashBytes(msg.Preimage), swap.HashLock) {
		return nil, nil, errors.Wrap(errors.ErrInvalidHash, "preimage does not match hash lock")
	}
	height := crosslock.MustGetHeight(ctx)
	if height >= swap.TimeLock {
		return nil, nil, errors.Wrapf(errors.ErrTimelockExpired, "height %d beyond time lock %d", height, swap.TimeLock)
	}
	if height >= swap.ExpirationHeight {
		return nil, nil, errors.Wrapf(errors.ErrSwapExpired, "height %d beyond expiration %d", height, swap.ExpirationHeight)
	}
	if swap.MultiSigRequired > 1 && swap.MultiSigProvided < swap.MultiSigRequired {
		return nil, nil, errors.Wrapf(errors.ErrInvalidSignature, "%d of %d approvals", swap.MultiSigProvided, swap.MultiSigRequired)
	}
	return &msg, swap, nil
}

//---------- refund

var _ crosslock.Handler = RefundSwapHandler{}

// RefundSwapHandler returns an expired swap to its initiator.
type RefundSwapHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

func (h RefundSwapHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: refundSwapCost}, nil
}

func (h RefundSwapHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	swap.Refunded = true
	if err := h.bucket.Save(db, orm.NewSimpleObj(msg.SwapID, swap)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, nil
}

func (h RefundSwapHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*RefundSwapMsg, *Swap, error) {
	var msg RefundSwapMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	swap, err := h.bucket.GetSwap(db, msg.SwapID)
	if err != nil {
		return nil, nil, err
	}
	if swap == nil {
		return nil, nil, errors.Wrapf(errors.ErrSwapNotFound, "%X", msg.SwapID)
	}
	if !h.auth.HasAddress(ctx, swap.Initiator) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the initiator can refund")
	}
	if swap.Claimed {
		return nil, nil, errors.Wrap(errors.ErrAlreadyClaimed, "swap already claimed")
	}
	if swap.Refunded {
		return nil, nil, errors.Wrap(errors.ErrInvalidRefund, "swap already refunded")
	}
	height := crosslock.MustGetHeight(ctx)
	if height < swap.ExpirationHeight {
		return nil, nil, errors.Wrapf(errors.ErrTimelockActive, "swap locked until height %d", swap.ExpirationHeight)
	}
	return &msg, swap, nil
}
