package zkproof

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/x/swap"
)

const (
	pathSubmitProof = "zkproof/submit"

	// MaxProofSize bounds the opaque payload so a single submission
	// cannot bloat the store.
	MaxProofSize = 8192
)

var _ crosslock.Msg = (*SubmitProofMsg)(nil)

// SubmitProofMsg attaches a confidential proof to a pending swap.
type SubmitProofMsg struct {
	SwapID []byte
	Proof  []byte
}

func (SubmitProofMsg) Path() string {
	return pathSubmitProof
}

func (m *SubmitProofMsg) Validate() error {
	if len(m.SwapID) != swap.SwapIDSize {
		return errors.Wrapf(errors.ErrInput, "swap id must be exactly %d bytes", swap.SwapIDSize)
	}
	if len(m.Proof) == 0 {
		return errors.Wrap(errors.ErrEmpty, "proof")
	}
	if len(m.Proof) > MaxProofSize {
		return errors.Wrapf(errors.ErrInput, "proof above %d bytes", MaxProofSize)
	}
	return nil
}

func (m *SubmitProofMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SubmitProofMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}
