package swap

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

// Controller exposes swap records to the other extensions. The
// multi-sig tracker and the proof gateway read and update swaps
// through it instead of touching the bucket directly.
type Controller struct {
	bucket Bucket
}

func NewController() Controller {
	return Controller{bucket: NewBucket()}
}

// Get loads the swap stored under swapID. Missing swaps return
// ErrSwapNotFound.
func (c Controller) Get(db crosslock.KVStore, swapID []byte) (*Swap, error) {
	s, err := c.bucket.GetSwap(db, swapID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errors.Wrapf(errors.ErrSwapNotFound, "%X", swapID)
	}
	return s, nil
}

// Update persists a modified swap back under its id.
func (c Controller) Update(db crosslock.KVStore, swapID []byte, s *Swap) error {
	return c.bucket.Save(db, orm.NewSimpleObj(swapID, s))
}
