package crosslock

import (
	"reflect"

	"github.com/crosslock/crosslock/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshaller, as Unmarshal almost always
// requires a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to accept non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is a request for the state machine to take an action (make a
// state transition). It is just the request, and must be validated by
// the handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Validate performs stateless checks on the message content. It
	// must be called before the message is processed.
	Validate() error

	// Path returns the routing path of the message, used by the Router
	// to locate the proper handler. Must match [a-z0-9_]+/[a-z0-9_]+.
	Path() string
}

// Tx represents the data sent from the caller to the core. It includes
// the actual message along with whatever the host needs to pass through
// middleware.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, verifies it is of
// the destination type and that it validates. The message is stored in
// the destination so it can be used without further casting.
func LoadMsg(tx Tx, dest Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	if !setMsg(msg, dest) {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	return nil
}

// setMsg copies the message value into the destination if both are
// pointers to the same underlying type.
func setMsg(msg, dest Msg) bool {
	v := reflect.ValueOf(msg)
	d := reflect.ValueOf(dest)
	if d.Kind() != reflect.Ptr || v.Type() != d.Type() {
		return false
	}
	d.Elem().Set(v.Elem())
	return true
}
