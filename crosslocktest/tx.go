package crosslocktest

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

// Tx is a mock implementing the crosslock.Tx interface, wrapping a bare
// message.
type Tx struct {
	// Msg is the message this transaction is carrying.
	Msg crosslock.Msg

	// Err is returned by any method call if not nil.
	Err error
}

var _ crosslock.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (crosslock.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "mock tx cannot unmarshal")
}
