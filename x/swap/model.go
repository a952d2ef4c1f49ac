package swap

import (
	"crypto/sha256"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

// Swap lifecycle states. A swap is pending until it is terminated by
// exactly one of claim or refund.
const (
	StatePending  uint32 = 0
	StateClaimed  uint32 = 1
	StateRefunded uint32 = 2
)

var _ orm.CloneableData = (*Swap)(nil)

// Swap is a single hash time locked contract between two parties.
// Once created all fields except the terminal flags, the approval
// counter and Preimage are immutable.
type Swap struct {
	Initiator        crosslock.Address
	Participant      crosslock.Address
	Amount           uint64
	HashLock         []byte
	TimeLock         int64
	CreationHeight   int64
	ExpirationHeight int64
	SwapToken        string
	TargetChain      string
	TargetAddress    []byte
	SwapFee          uint64
	ProtocolFee      uint64
	MultiSigRequired uint32
	MultiSigProvided uint32
	PrivacyLevel     uint32
	Claimed          bool
	Refunded         bool
	Preimage         []byte
}

func (s *Swap) Validate() error {
	if err := s.Initiator.Validate(); err != nil {
		return errors.Wrap(err, "initiator")
	}
	if err := s.Participant.Validate(); err != nil {
		return errors.Wrap(err, "participant")
	}
	if err := validateHashLock(s.HashLock); err != nil {
		return err
	}
	if s.Amount == 0 {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if s.ExpirationHeight <= s.CreationHeight {
		return errors.Wrap(errors.ErrState, "expiration before creation")
	}
	if s.Claimed && s.Refunded {
		return errors.Wrap(errors.ErrState, "swap both claimed and refunded")
	}
	return nil
}

func (s *Swap) Copy() orm.CloneableData {
	cpy := *s
	cpy.Initiator = s.Initiator.Clone()
	cpy.Participant = s.Participant.Clone()
	cpy.HashLock = append([]byte(nil), s.HashLock...)
	cpy.TargetAddress = append([]byte(nil), s.TargetAddress...)
	cpy.Preimage = append([]byte(nil), s.Preimage...)
	return &cpy
}

func (s *Swap) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(s)
}

func (s *Swap) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, s)
}

// State reports the lifecycle state of the swap.
func (s *Swap) State() uint32 {
	switch {
	case s.Claimed:
		return StateClaimed
	case s.Refunded:
		return StateRefunded
	default:
		return StatePending
	}
}

// HashBytes computes the digest a preimage must produce to match a
// swap's hash lock.
func HashBytes(preimage []byte) []byte {
	h := sha256.Sum256(preimage)
	return h[:]
}

const BucketName = "swaps"

// Bucket is a specialized swaps container.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Swap{})),
	}
}

// Save enforces the proper model is stored in this bucket.
func (b Bucket) Save(db crosslock.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Swap); !ok {
		return errors.Wrapf(errors.ErrType, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetSwap loads the swap stored under the given id, or nil if none.
func (b Bucket) GetSwap(db crosslock.KVStore, swapID []byte) (*Swap, error) {
	obj, err := b.Get(db, swapID)
	if err != nil {
		return nil, err
	}
	return AsSwap(obj), nil
}

// AsSwap extracts a *Swap value or nil from the object.
func AsSwap(obj orm.Object) *Swap {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Swap)
}
