package treasury

import (
	"math"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

// Controller exposes the treasury bookkeeping to other extensions
// without giving them raw bucket access.
type Controller struct {
	bucket Bucket
}

// NewController returns a controller over the given bucket.
func NewController(bucket Bucket) Controller {
	return Controller{bucket: bucket}
}

// Credit adds the given amount to the accumulated fee balance. The
// record is created on first use, so fees can accrue before governance
// assigns an administrator.
func (c Controller) Credit(db crosslock.KVStore, amount uint64) error {
	t, err := c.bucket.GetTreasury(db)
	if err != nil {
		return err
	}
	if t == nil {
		t = &Treasury{}
	}
	if t.Balance > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "crediting %d to %d", amount, t.Balance)
	}
	t.Balance += amount
	return c.bucket.Save(db, t)
}

// Balance returns the accumulated protocol fee balance.
func (c Controller) Balance(db crosslock.ReadOnlyKVStore) (uint64, error) {
	t, err := c.bucket.GetTreasury(db)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, nil
	}
	return t.Balance, nil
}

// Admin returns the current administrator identity, nil when none was
// assigned yet.
func (c Controller) Admin(db crosslock.ReadOnlyKVStore) (crosslock.Address, error) {
	t, err := c.bucket.GetTreasury(db)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return t.Admin, nil
}
