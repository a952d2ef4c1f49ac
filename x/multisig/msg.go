package multisig

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/x/swap"
)

const (
	pathApproveSwap = "multisig/approve"

	// SignatureSize is the width of the opaque signature buffer.
	SignatureSize = 64
)

var _ crosslock.Msg = (*ApproveSwapMsg)(nil)

// ApproveSwapMsg records the caller's approval of a pending
// multi-signature swap.
type ApproveSwapMsg struct {
	SwapID    []byte
	Signature []byte
}

func (ApproveSwapMsg) Path() string {
	return pathApproveSwap
}

func (m *ApproveSwapMsg) Validate() error {
	if len(m.SwapID) != swap.SwapIDSize {
		return errors.Wrapf(errors.ErrInput, "swap id must be exactly %d bytes", swap.SwapIDSize)
	}
	if len(m.Signature) != SignatureSize {
		return errors.Wrapf(errors.ErrInput, "signature must be exactly %d bytes", SignatureSize)
	}
	return nil
}

func (m *ApproveSwapMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *ApproveSwapMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
