package zkproof

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

var _ orm.CloneableData = (*Proof)(nil)

// Proof is the stored outcome of a proof submission, keyed by the swap
// id it belongs to.
type Proof struct {
	Proof    []byte
	Verified bool
	Height   int64
}

func (p *Proof) Validate() error {
	if len(p.Proof) == 0 {
		return errors.Wrap(errors.ErrEmpty, "proof")
	}
	if p.Height < 0 {
		return errors.Wrap(errors.ErrState, "negative height")
	}
	return nil
}

func (p *Proof) Copy() orm.CloneableData {
	cpy := *p
	cpy.Proof = append([]byte(nil), p.Proof...)
	return &cpy
}

func (p *Proof) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Proof) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

const BucketName = "proofs"

// Bucket stores at most one Proof per swap.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Proof{})),
	}
}

// Save enforces the proper model is stored in this bucket.
func (b Bucket) Save(db crosslock.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Proof); !ok {
		return errors.Wrapf(errors.ErrType, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetProof loads the proof stored for the given swap, or nil if none
// was submitted yet.
func (b Bucket) GetProof(db crosslock.KVStore, swapID []byte) (*Proof, error) {
	obj, err := b.Get(db, swapID)
	if err != nil {
		return nil, err
	}
	return AsProof(obj), nil
}

// AsProof extracts a *Proof value or nil from the object.
func AsProof(obj orm.Object) *Proof {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Proof)
}
