package multisig

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

var _ orm.CloneableData = (*Approval)(nil)

// Approval is the witness that one signer approved one swap. The key
// carries both identities, the record itself only the outcome.
type Approval struct {
	Approved bool
	Height   int64
}

func (a *Approval) Validate() error {
	if !a.Approved {
		return errors.Wrap(errors.ErrState, "approval must be approved")
	}
	if a.Height < 0 {
		return errors.Wrap(errors.ErrState, "negative height")
	}
	return nil
}

func (a *Approval) Copy() orm.CloneableData {
	cpy := *a
	return &cpy
}

func (a *Approval) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(a)
}

func (a *Approval) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, a)
}

const BucketName = "approvals"

// ApprovalKey builds the composite key for one (swap, signer) pair.
func ApprovalKey(swapID []byte, signer crosslock.Address) []byte {
	key := make([]byte, 0, len(swapID)+len(signer))
	key = append(key, swapID...)
	return append(key, signer...)
}

// Bucket stores one Approval per (swap, signer) pair.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Approval{})),
	}
}

// Save enforces the proper model is stored in this bucket.
func (b Bucket) Save(db crosslock.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Approval); !ok {
		return errors.Wrapf(errors.ErrType, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetApproval loads the approval of the given signer for the given
// swap, or nil when the signer never approved it.
func (b Bucket) GetApproval(db crosslock.KVStore, swapID []byte, signer crosslock.Address) (*Approval, error) {
	obj, err := b.Get(db, ApprovalKey(swapID, signer))
	if err != nil {
		return nil, err
	}
	return AsApproval(obj), nil
}

// AsApproval extracts an *Approval value or nil from the object.
func AsApproval(obj orm.Object) *Approval {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Approval)
}
