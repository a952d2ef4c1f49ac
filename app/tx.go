package app

import (
	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

var _ crosslock.Tx = (*Tx)(nil)

// Tx is the concrete transaction envelope of this application. The
// host authenticates the caller out of band, so the envelope carries
// nothing but the message.
type Tx struct {
	Msg crosslock.Msg
}

// NewTx wraps a message for processing.
func NewTx(msg crosslock.Msg) *Tx {
	return &Tx{Msg: msg}
}

func (tx *Tx) GetMsg() (crosslock.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, tx)
}

// TxDecoder parses a serialized transaction envelope.
func TxDecoder(raw []byte) (crosslock.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &tx, nil
}
