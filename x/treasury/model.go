package treasury

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

// BucketName is where we store the treasury singleton.
const BucketName = "treasury"

// treasuryKey is the fixed key of the singleton record.
var treasuryKey = []byte("state")

var _ orm.CloneableData = (*Treasury)(nil)

// Treasury holds the administrator identity and the accumulated
// protocol fee balance. Admin may be empty until genesis assigns one;
// with no admin, every admin-gated operation fails.
type Treasury struct {
	Admin   crosslock.Address
	Balance uint64
}

func (t *Treasury) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

func (t *Treasury) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

// Validate ensures the treasury record is well formed.
func (t *Treasury) Validate() error {
	if len(t.Admin) != 0 {
		if err := t.Admin.Validate(); err != nil {
			return errors.Wrap(err, "admin")
		}
	}
	return nil
}

// Copy makes a deep copy of the record.
func (t *Treasury) Copy() orm.CloneableData {
	return &Treasury{
		Admin:   t.Admin.Clone(),
		Balance: t.Balance,
	}
}

// AsTreasury extracts a *Treasury value or nil from the object. Panics
// on bad type.
func AsTreasury(obj orm.Object) *Treasury {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Treasury)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a treasury bucket.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Treasury))),
	}
}

// GetTreasury returns the singleton record, or nil when the treasury
// was never touched.
func (b Bucket) GetTreasury(db crosslock.ReadOnlyKVStore) (*Treasury, error) {
	obj, err := b.Get(db, treasuryKey)
	if err != nil {
		return nil, errors.Wrap(err, "bucket lookup")
	}
	return AsTreasury(obj), nil
}

// Save persists the singleton record.
func (b Bucket) Save(db crosslock.KVStore, t *Treasury) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(treasuryKey, t))
}

// RegisterQuery registers the treasury bucket under /treasury.
func RegisterQuery(qr crosslock.QueryRouter) {
	NewBucket().Register("treasury", qr)
}
