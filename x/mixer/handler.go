package mixer

import (
	"encoding/binary"
	"math"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
	"github.com/crosslock/crosslock/x"
)

const (
	createPoolCost int64 = 300
	joinPoolCost   int64 = 100
	withdrawCost   int64 = 100
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r crosslock.Registry, auth x.Authenticator) {
	pools := NewPoolBucket()
	participants := NewParticipantBucket()
	r.Handle(pathCreatePool, CreatePoolHandler{auth: auth, pools: pools})
	r.Handle(pathJoinPool, JoinPoolHandler{auth: auth, pools: pools, participants: participants})
	r.Handle(pathWithdraw, WithdrawHandler{auth: auth, pools: pools, participants: participants})
}

// RegisterQuery will register the pool bucket as "/pools" and the
// participant bucket as "/participants".
func RegisterQuery(qr crosslock.QueryRouter) {
	NewPoolBucket().Register("pools", qr)
	NewParticipantBucket().Register("participants", qr)
}

//---------- create

var _ crosslock.Handler = CreatePoolHandler{}

// CreatePoolHandler opens a new, inactive pool.
type CreatePoolHandler struct {
	auth  x.Authenticator
	pools PoolBucket
}

func (h CreatePoolHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: createPoolCost}, nil
}

func (h CreatePoolHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	height := crosslock.MustGetHeight(ctx)

	poolID := DerivePoolID(msg.Creator, height, msg)
	switch existing, err := h.pools.GetPool(db, poolID); {
	case err != nil:
		return nil, err
	case existing != nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "pool %X", poolID)
	}

	pool := &Pool{
		Creator:             msg.Creator,
		MinAmount:           msg.MinAmount,
		MaxAmount:           msg.MaxAmount,
		ActivationThreshold: msg.ActivationThreshold,
		CreationHeight:      height,
		ExecutionDelay:      msg.ExecutionDelay,
		ExecutionWindow:     msg.ExecutionWindow,
	}
	if err := h.pools.Save(db, orm.NewSimpleObj(poolID, pool)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{Data: poolID}, nil
}

func (h CreatePoolHandler) validate(ctx crosslock.Context, tx crosslock.Tx) (*CreatePoolMsg, error) {
	var msg CreatePoolMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Creator) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "creator did not sign")
	}
	return &msg, nil
}

//---------- join

var _ crosslock.Handler = JoinPoolHandler{}

// JoinPoolHandler deposits into a pool and activates it when the
// threshold is crossed.
type JoinPoolHandler struct {
	auth         x.Authenticator
	pools        PoolBucket
	participants ParticipantBucket
}

func (h JoinPoolHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: joinPoolCost}, nil
}

func (h JoinPoolHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, pool, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	height := crosslock.MustGetHeight(ctx)
	depositor := x.MainSigner(ctx, h.auth)

	// indexes are dense, the pre-increment count is the new index
	index := pool.ParticipantCount
	participant := &Participant{
		Address:       depositor,
		Amount:        msg.Amount,
		BlindedOutput: msg.BlindedOutput,
		JoinedHeight:  height,
	}
	key := ParticipantKey(msg.PoolID, index)
	if err := h.participants.Save(db, orm.NewSimpleObj(key, participant)); err != nil {
		return nil, err
	}

	pool.ParticipantCount++
	pool.TotalAmount += msg.Amount
	// activation is monotone, crossing the threshold latches it
	if pool.ParticipantCount >= pool.ActivationThreshold {
		pool.Active = true
	}
	if err := h.pools.Save(db, orm.NewSimpleObj(msg.PoolID, pool)); err != nil {
		return nil, err
	}

	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(index))
	return &crosslock.DeliverResult{Data: data}, nil
}

func (h JoinPoolHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*JoinPoolMsg, *Pool, error) {
	var msg JoinPoolMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no depositor identity")
	}
	pool, err := h.pools.GetPool(db, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		return nil, nil, errors.Wrapf(errors.ErrMixerNotFound, "%X", msg.PoolID)
	}
	if msg.Amount < pool.MinAmount || msg.Amount > pool.MaxAmount {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientFunds, "amount %d outside [%d, %d]", msg.Amount, pool.MinAmount, pool.MaxAmount)
	}
	if pool.Active {
		return nil, nil, errors.Wrap(errors.ErrPoolClosed, "pool no longer accepts deposits")
	}
	if pool.ParticipantCount >= MaxPoolParticipants {
		return nil, nil, errors.Wrapf(errors.ErrParticipantLimit, "pool full at %d", MaxPoolParticipants)
	}
	if pool.TotalAmount > math.MaxUint64-msg.Amount {
		return nil, nil, errors.Wrapf(errors.ErrOverflow, "depositing %d to %d", msg.Amount, pool.TotalAmount)
	}
	return &msg, pool, nil
}

//---------- withdraw

var _ crosslock.Handler = WithdrawHandler{}

// WithdrawHandler pays out one deposit inside the execution window.
type WithdrawHandler struct {
	auth         x.Authenticator
	pools        PoolBucket
	participants ParticipantBucket
}

func (h WithdrawHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, participant, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	participant.Withdrawn = true
	key := ParticipantKey(msg.PoolID, msg.ParticipantID)
	if err := h.participants.Save(db, orm.NewSimpleObj(key, participant)); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, nil
}

// validate runs the withdrawal precondition chain. The first failing
// check decides the returned error kind.
func (h WithdrawHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*WithdrawMsg, *Participant, error) {
	var msg WithdrawMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	pool, err := h.pools.GetPool(db, msg.PoolID)
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		return nil, nil, errors.Wrapf(errors.ErrMixerNotFound, "%X", msg.PoolID)
	}
	participant, err := h.participants.GetParticipant(db, msg.PoolID, msg.ParticipantID)
	if err != nil {
		return nil, nil, err
	}
	if participant == nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidParticipant, "no participant %d", msg.ParticipantID)
	}
	if !h.auth.HasAddress(ctx, participant.Address) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the depositor can withdraw")
	}
	if !pool.Active {
		return nil, nil, errors.Wrap(errors.ErrNotClaimable, "pool not active")
	}
	if participant.Withdrawn {
		return nil, nil, errors.Wrap(errors.ErrAlreadyClaimed, "deposit already withdrawn")
	}
	height := crosslock.MustGetHeight(ctx)
	if height < pool.WindowOpen() {
		return nil, nil, errors.Wrapf(errors.ErrTimelockActive, "window opens at height %d", pool.WindowOpen())
	}
	if height > pool.WindowClose() {
		return nil, nil, errors.Wrapf(errors.ErrTimelockExpired, "window closed at height %d", pool.WindowClose())
	}
	return &msg, participant, nil
}
