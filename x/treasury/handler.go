package treasury

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/x"
)

const (
	updateAdminCost  int64 = 10
	withdrawFeesCost int64 = 10
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r crosslock.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathUpdateAdmin, UpdateAdminHandler{auth: auth, bucket: bucket})
	r.Handle(pathWithdrawFees, WithdrawFeesHandler{auth: auth, bucket: bucket})
}

// UpdateAdminHandler reassigns the administrator identity.
type UpdateAdminHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ crosslock.Handler = UpdateAdminHandler{}

func (h UpdateAdminHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: updateAdminCost}, nil
}

func (h UpdateAdminHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	t.Admin = msg.NewAdmin
	if err := h.bucket.Save(db, t); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{Data: msg.NewAdmin}, nil
}

func (h UpdateAdminHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*UpdateAdminMsg, *Treasury, error) {
	var msg UpdateAdminMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	t, err := h.bucket.GetTreasury(db)
	if err != nil {
		return nil, nil, err
	}
	if t == nil || len(t.Admin) == 0 || !h.auth.HasAddress(ctx, t.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the admin")
	}
	return &msg, t, nil
}

// WithdrawFeesHandler debits the accumulated fee balance. No asset
// moves here, custody is external to this core; only the bookkeeping
// balance changes.
type WithdrawFeesHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ crosslock.Handler = WithdrawFeesHandler{}

func (h WithdrawFeesHandler) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &crosslock.CheckResult{GasAllocated: withdrawFeesCost}, nil
}

func (h WithdrawFeesHandler) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	t.Balance -= msg.Amount
	if err := h.bucket.Save(db, t); err != nil {
		return nil, err
	}
	return &crosslock.DeliverResult{}, nil
}

func (h WithdrawFeesHandler) validate(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*WithdrawFeesMsg, *Treasury, error) {
	var msg WithdrawFeesMsg
	if err := crosslock.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	t, err := h.bucket.GetTreasury(db)
	if err != nil {
		return nil, nil, err
	}
	if t == nil || len(t.Admin) == 0 || !h.auth.HasAddress(ctx, t.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the admin")
	}
	if msg.Amount > t.Balance {
		return nil, nil, errors.Wrapf(errors.ErrInsufficientFunds, "withdraw %d of %d", msg.Amount, t.Balance)
	}
	return &msg, t, nil
}
