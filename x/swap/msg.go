package swap

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

const (
	pathCreateSwap = "swap/create"
	pathClaimSwap  = "swap/claim"
	pathRefundSwap = "swap/refund"

	// MinSwapAmount is the smallest amount a swap or a mixing pool
	// bound may carry.
	MinSwapAmount uint64 = 1000

	// MaxTimeoutBlocks caps the relative time lock of a swap.
	MaxTimeoutBlocks int64 = 1440

	// SwapFeeRate and ProtocolFeeRate are expressed against
	// treasury.FeeDenominator. Both fees are computed once at creation
	// and immutable thereafter.
	SwapFeeRate     uint32 = 5
	ProtocolFeeRate uint32 = 2

	// preimage size in bytes
	PreimageSize = 32
	// hash lock is a sha256 digest
	HashLockSize = 32
	// destination-chain address buffer, stored but never validated
	TargetAddressSize = 32

	maxTokenSize = 32
	maxChainSize = 32
)

var _ crosslock.Msg = (*CreateSwapMsg)(nil)
var _ crosslock.Msg = (*ClaimSwapMsg)(nil)
var _ crosslock.Msg = (*RefundSwapMsg)(nil)

// CreateSwapMsg opens a new swap from Initiator to Participant.
type CreateSwapMsg struct {
	Initiator        crosslock.Address
	Participant      crosslock.Address
	Amount           uint64
	HashLock         []byte
	TimeLock         int64
	SwapToken        string
	TargetChain      string
	TargetAddress    []byte
	MultiSigRequired uint32
	PrivacyLevel     uint32
}

func (CreateSwapMsg) Path() string {
	return pathCreateSwap
}

func (m *CreateSwapMsg) Validate() error {
	if err := m.Initiator.Validate(); err != nil {
		return errors.Wrap(err, "initiator")
	}
	if err := m.Participant.Validate(); err != nil {
		return errors.Wrap(err, "participant")
	}
	if m.Initiator.Equals(m.Participant) {
		return errors.Wrap(errors.ErrInvalidParticipant, "cannot swap with yourself")
	}
	if m.Amount < MinSwapAmount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "amount %d below minimum %d", m.Amount, MinSwapAmount)
	}
	if err := validateHashLock(m.HashLock); err != nil {
		return err
	}
	if m.TimeLock <= 0 {
		return errors.Wrap(errors.ErrInput, "time lock is required")
	}
	if m.TimeLock > MaxTimeoutBlocks {
		return errors.Wrapf(errors.ErrTimelockExpired, "time lock %d above maximum %d", m.TimeLock, MaxTimeoutBlocks)
	}
	if m.SwapToken == "" || len(m.SwapToken) > maxTokenSize {
		return errors.Wrapf(errors.ErrInput, "swap token %q", m.SwapToken)
	}
	if m.TargetChain == "" || len(m.TargetChain) > maxChainSize {
		return errors.Wrapf(errors.ErrInput, "target chain %q", m.TargetChain)
	}
	if len(m.TargetAddress) != TargetAddressSize {
		return errors.Wrapf(errors.ErrInput, "target address must be exactly %d bytes", TargetAddressSize)
	}
	return nil
}

func (m *CreateSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// ClaimSwapMsg releases a pending swap to the participant by revealing
// the preimage of the hash lock.
type ClaimSwapMsg struct {
	SwapID   []byte
	Preimage []byte
}

func (ClaimSwapMsg) Path() string {
	return pathClaimSwap
}

func (m *ClaimSwapMsg) Validate() error {
	if err := validateSwapID(m.SwapID); err != nil {
		return err
	}
	if len(m.Preimage) != PreimageSize {
		return errors.Wrapf(errors.ErrInput, "preimage must be exactly %d bytes", PreimageSize)
	}
	return nil
}

func (m *ClaimSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ClaimSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// RefundSwapMsg returns an expired swap to the initiator.
type RefundSwapMsg struct {
	SwapID []byte
}

func (RefundSwapMsg) Path() string {
	return pathRefundSwap
}

func (m *RefundSwapMsg) Validate() error {
	return validateSwapID(m.SwapID)
}

func (m *RefundSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *RefundSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

func validateHashLock(hashLock []byte) error {
	if len(hashLock) != HashLockSize {
		return errors.Wrapf(errors.ErrInput, "hash lock is sha256 and therefore must be exactly %d bytes", HashLockSize)
	}
	return nil
}

func validateSwapID(swapID []byte) error {
	if len(swapID) != SwapIDSize {
		return errors.Wrapf(errors.ErrInput, "swap id must be exactly %d bytes", SwapIDSize)
	}
	return nil
}
