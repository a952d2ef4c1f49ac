package mixer

import (
	"encoding/binary"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/orm"
)

var _ orm.CloneableData = (*Pool)(nil)

// Pool is one mixing round. It fills until the activation threshold is
// reached and never deactivates afterwards.
type Pool struct {
	Creator             crosslock.Address
	TotalAmount         uint64
	ParticipantCount    uint32
	MinAmount           uint64
	MaxAmount           uint64
	ActivationThreshold uint32
	Active              bool
	CreationHeight      int64
	ExecutionDelay      int64
	ExecutionWindow     int64
}

func (p *Pool) Validate() error {
	if err := p.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if p.MinAmount == 0 || p.MaxAmount < p.MinAmount {
		return errors.Wrap(errors.ErrState, "invalid amount bounds")
	}
	if p.ActivationThreshold == 0 {
		return errors.Wrap(errors.ErrState, "missing activation threshold")
	}
	if p.ExecutionDelay < 0 {
		return errors.Wrap(errors.ErrState, "negative execution delay")
	}
	if p.ExecutionWindow <= 0 {
		return errors.Wrap(errors.ErrState, "missing execution window")
	}
	return nil
}

func (p *Pool) Copy() orm.CloneableData {
	cpy := *p
	cpy.Creator = p.Creator.Clone()
	return &cpy
}

func (p *Pool) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Pool) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

// WindowOpen and WindowClose bound the withdrawal opportunity, both
// inclusive.
func (p *Pool) WindowOpen() int64 {
	return p.CreationHeight + p.ExecutionDelay
}

func (p *Pool) WindowClose() int64 {
	return p.WindowOpen() + p.ExecutionWindow
}

var _ orm.CloneableData = (*Participant)(nil)

// Participant is a single deposit in a pool, keyed by the pool id and
// a dense join index.
type Participant struct {
	Address       crosslock.Address
	Amount        uint64
	BlindedOutput []byte
	JoinedHeight  int64
	Withdrawn     bool
}

func (p *Participant) Validate() error {
	if err := p.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if p.Amount == 0 {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if len(p.BlindedOutput) != BlindedOutputSize {
		return errors.Wrap(errors.ErrState, "malformed blinded output")
	}
	return nil
}

func (p *Participant) Copy() orm.CloneableData {
	cpy := *p
	cpy.Address = p.Address.Clone()
	cpy.BlindedOutput = append([]byte(nil), p.BlindedOutput...)
	return &cpy
}

func (p *Participant) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(p)
}

func (p *Participant) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, p)
}

const (
	PoolBucketName        = "pools"
	ParticipantBucketName = "participants"
)

// ParticipantKey builds the composite key for one deposit.
func ParticipantKey(poolID []byte, index uint32) []byte {
	key := make([]byte, len(poolID)+8)
	copy(key, poolID)
	binary.BigEndian.PutUint64(key[len(poolID):], uint64(index))
	return key
}

// PoolBucket stores Pool records keyed by pool id.
type PoolBucket struct {
	orm.Bucket
}

func NewPoolBucket() PoolBucket {
	return PoolBucket{
		Bucket: orm.NewBucket(PoolBucketName, orm.NewSimpleObj(nil, &Pool{})),
	}
}

// Save enforces the proper model is stored in this bucket.
func (b PoolBucket) Save(db crosslock.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Pool); !ok {
		return errors.Wrapf(errors.ErrType, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetPool loads the pool stored under the given id, or nil if none.
func (b PoolBucket) GetPool(db crosslock.KVStore, poolID []byte) (*Pool, error) {
	obj, err := b.Get(db, poolID)
	if err != nil {
		return nil, err
	}
	return AsPool(obj), nil
}

// AsPool extracts a *Pool value or nil from the object.
func AsPool(obj orm.Object) *Pool {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Pool)
}

// ParticipantBucket stores Participant records keyed by pool id and
// join index.
type ParticipantBucket struct {
	orm.Bucket
}

func NewParticipantBucket() ParticipantBucket {
	return ParticipantBucket{
		Bucket: orm.NewBucket(ParticipantBucketName, orm.NewSimpleObj(nil, &Participant{})),
	}
}

// Save enforces the proper model is stored in this bucket.
func (b ParticipantBucket) Save(db crosslock.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Participant); !ok {
		return errors.Wrapf(errors.ErrType, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}

// GetParticipant loads one deposit, or nil when the index was never
// assigned in this pool.
func (b ParticipantBucket) GetParticipant(db crosslock.KVStore, poolID []byte, index uint32) (*Participant, error) {
	obj, err := b.Get(db, ParticipantKey(poolID, index))
	if err != nil {
		return nil, err
	}
	return AsParticipant(obj), nil
}

// AsParticipant extracts a *Participant value or nil from the object.
func AsParticipant(obj orm.Object) *Participant {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Participant)
}
