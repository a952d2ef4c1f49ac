package treasury

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

// Initializer fulfils the crosslock.Initializer interface to load data
// from the genesis file.
type Initializer struct{}

var _ crosslock.Initializer = (*Initializer)(nil)

// FromGenesis initializes the treasury from genesis options:
//
//   "treasury": {"admin": "<hex address>"}
//
// A missing section leaves the treasury unassigned.
func (Initializer) FromGenesis(opts crosslock.Options, db crosslock.KVStore) error {
	var conf struct {
		Admin crosslock.Address `json:"admin"`
	}
	if err := opts.ReadOptions("treasury", &conf); err != nil {
		return errors.Wrap(err, "treasury genesis options")
	}
	if len(conf.Admin) == 0 {
		return nil
	}
	if err := conf.Admin.Validate(); err != nil {
		return errors.Wrap(err, "genesis admin")
	}

	bucket := NewBucket()
	t, err := bucket.GetTreasury(db)
	if err != nil {
		return err
	}
	if t == nil {
		t = &Treasury{}
	}
	t.Admin = conf.Admin
	return bucket.Save(db, t)
}
