package mixer

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/x/swap"
)

const (
	pathCreatePool = "mixer/create"
	pathJoinPool   = "mixer/join"
	pathWithdraw   = "mixer/withdraw"

	// MaxPoolParticipants caps how many deposits a single pool can
	// collect.
	MaxPoolParticipants uint32 = 100

	// BlindedOutputSize is the width of the opaque payout address.
	BlindedOutputSize = 32
)

var _ crosslock.Msg = (*CreatePoolMsg)(nil)
var _ crosslock.Msg = (*JoinPoolMsg)(nil)
var _ crosslock.Msg = (*WithdrawMsg)(nil)

// CreatePoolMsg opens a new mixing pool.
type CreatePoolMsg struct {
	Creator             crosslock.Address
	MinAmount           uint64
	MaxAmount           uint64
	ActivationThreshold uint32
	ExecutionDelay      int64
	ExecutionWindow     int64
}

func (CreatePoolMsg) Path() string {
	return pathCreatePool
}

func (m *CreatePoolMsg) Validate() error {
	if err := m.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if m.MinAmount < swap.MinSwapAmount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "minimum amount %d below %d", m.MinAmount, swap.MinSwapAmount)
	}
	if m.MaxAmount < m.MinAmount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "maximum amount %d below minimum %d", m.MaxAmount, m.MinAmount)
	}
	if m.ActivationThreshold == 0 {
		return errors.Wrap(errors.ErrInvalidParticipant, "activation threshold is required")
	}
	if m.ActivationThreshold > MaxPoolParticipants {
		return errors.Wrapf(errors.ErrInvalidParticipant, "activation threshold above %d", MaxPoolParticipants)
	}
	if m.ExecutionDelay < 0 {
		return errors.Wrap(errors.ErrInput, "negative execution delay")
	}
	if m.ExecutionWindow <= 0 {
		return errors.Wrap(errors.ErrInput, "execution window is required")
	}
	return nil
}

func (m *CreatePoolMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreatePoolMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// JoinPoolMsg deposits into an open pool.
type JoinPoolMsg struct {
	PoolID        []byte
	Amount        uint64
	BlindedOutput []byte
}

func (JoinPoolMsg) Path() string {
	return pathJoinPool
}

func (m *JoinPoolMsg) Validate() error {
	if err := validatePoolID(m.PoolID); err != nil {
		return err
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if len(m.BlindedOutput) != BlindedOutputSize {
		return errors.Wrapf(errors.ErrInput, "blinded output must be exactly %d bytes", BlindedOutputSize)
	}
	return nil
}

func (m *JoinPoolMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *JoinPoolMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// WithdrawMsg collects a deposit from an active pool inside its
// execution window.
type WithdrawMsg struct {
	PoolID        []byte
	ParticipantID uint32
}

func (WithdrawMsg) Path() string {
	return pathWithdraw
}

func (m *WithdrawMsg) Validate() error {
	return validatePoolID(m.PoolID)
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func validatePoolID(poolID []byte) error {
	if len(poolID) != PoolIDSize {
		return errors.Wrapf(errors.ErrInput, "pool id must be exactly %d bytes", PoolIDSize)
	}
	return nil
}
