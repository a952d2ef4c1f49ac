package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Framework error kinds. These categorize issues in the plumbing
// (storage, routing, serialization) rather than protocol outcomes.
var (
	// ErrNotFound is used when a requested entity cannot be located and
	// no more specific kind applies.
	ErrNotFound = Register(2, "not found")

	// ErrDuplicate is returned when there is already a record using the
	// same unique key.
	ErrDuplicate = Register(3, "duplicate")

	// ErrInput stands for general input problems indication.
	ErrInput = Register(4, "invalid input")

	// ErrState is returned when an object is in an invalid state.
	ErrState = Register(5, "invalid state")

	// ErrType is returned whenever the type is not what was expected.
	ErrType = Register(6, "invalid type")

	// ErrEmpty is returned when a value fails a not-empty assertion.
	ErrEmpty = Register(7, "value is empty")

	// ErrOverflow is returned when a computation cannot be completed
	// because the result value exceeds the type.
	ErrOverflow = Register(8, "value overflow")

	// ErrHuman is returned when a code path is reached that should not
	// ever be reached if the code was written as expected.
	ErrHuman = Register(9, "coding error")

	// ErrDatabase is returned when the storage layer misbehaves.
	ErrDatabase = Register(10, "database error")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Protocol error kinds. Every mutating operation resolves to a success
// value or exactly one of these. They are flat and carry no payload
// beyond their identity.
var (
	// ErrUnauthorized is returned when the caller identity does not
	// hold the right required by the operation.
	ErrUnauthorized = Register(100, "unauthorized")

	// ErrSwapNotFound is returned when a swap id references no record.
	ErrSwapNotFound = Register(101, "swap not found")

	// ErrAlreadyClaimed is returned when acting on a swap or a mixer
	// position that already reached the claimed/withdrawn state.
	ErrAlreadyClaimed = Register(102, "already claimed")

	// ErrNotClaimable is returned when withdrawing from a pool that has
	// not activated yet.
	ErrNotClaimable = Register(103, "not claimable")

	// ErrTimelockActive is returned when a time guard has not yet
	// opened: refund before expiration, mixer withdrawal before the
	// execution delay elapsed.
	ErrTimelockActive = Register(104, "timelock still active")

	// ErrTimelockExpired is returned when a time budget is exceeded: a
	// time-lock above the allowed maximum, a claim past the raw
	// time-lock bound, or a mixer withdrawal past the execution window.
	ErrTimelockExpired = Register(105, "timelock expired")

	// ErrInvalidProof is returned when the injected proof verifier
	// rejects a confidential proof payload.
	ErrInvalidProof = Register(106, "invalid proof")

	// ErrInvalidSignature is returned when a multi-sig gated claim
	// lacks quorum, or when the injected signature verifier rejects an
	// approval payload.
	ErrInvalidSignature = Register(107, "invalid signature")

	// ErrInvalidHash is returned when the preimage digest does not
	// match the hash-lock.
	ErrInvalidHash = Register(108, "invalid hash")

	// ErrInsufficientFunds is returned for amounts below required
	// minimums, outside pool bounds, or exceeding the treasury balance.
	ErrInsufficientFunds = Register(109, "insufficient funds")

	// ErrSwapExpired is returned when claiming a swap at or past its
	// absolute expiration height.
	ErrSwapExpired = Register(110, "swap expired")

	// ErrInvalidRefund is returned when acting on a swap that was
	// already refunded.
	ErrInvalidRefund = Register(111, "invalid refund")

	// ErrInvalidParticipant is returned for a self-swap, a bad pool
	// activation threshold, or a mixer participant id that references
	// no record.
	ErrInvalidParticipant = Register(112, "invalid participant")

	// ErrMixerNotFound is returned when a pool id references no record.
	ErrMixerNotFound = Register(113, "mixer not found")

	// ErrInvalidFee is returned when a fee computation is asked for a
	// rate outside the valid range.
	ErrInvalidFee = Register(114, "invalid fee")

	// ErrParticipantLimit is returned when joining a pool that already
	// holds the maximum number of participants.
	ErrParticipantLimit = Register(115, "participant limit reached")

	// ErrSwapExists is returned when initiating a swap whose derived id
	// already references a record. The source protocol signalled this
	// as "already claimed"; it is kept as its own kind so an id
	// collision cannot be mistaken for a terminal-state violation.
	ErrSwapExists = Register(116, "swap already exists")

	// ErrPoolClosed is returned when joining a pool that activated and
	// is closed to new entrants. Split from ErrAlreadyClaimed for the
	// same reason as ErrSwapExists.
	ErrPoolClosed = Register(117, "pool closed to new participants")
)

// Register returns an error instance that should be used as the base
// for creating error instances during runtime.
//
// Popular root errors are declared in this package, but extensions may
// want to declare custom codes. This function ensures that no error
// code is used twice. Attempt to reuse an error code results in panic.
//
// Use this function only during a program startup phase.
func Register(code uint32, description string) *Error {
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, e.desc))
	}
	err := &Error{
		code: code,
		desc: description,
	}
	usedCodes[err.code] = err
	return err
}

// usedCodes is keeping track of used codes to ensure their uniqueness.
// No two error instances should share the same error code.
var usedCodes = map[uint32]*Error{
	1: nil, // Error code 1 is reserved for unregistered errors.
}

// Error represents a root error.
//
// This package is using root errors to categorize issues. Each instance
// created during the runtime should wrap one of the declared root
// errors. This allows error tests and returning all errors to the
// client in a safe manner.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// Code returns the registered numeric identity of this error kind.
func (e Error) Code() uint32 {
	return e.code
}

// New returns a new error. The returned instance has the root cause set
// to this error. Below two lines are equal:
//   e.New("my description")
//   Wrap(e, "my description")
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is basically New with formatting capabilities.
func (e *Error) Newf(description string, args ...interface{}) error {
	return e.New(fmt.Sprintf(description, args...))
}

// Is checks if the given error instance is of this kind. This involves
// unwrapping the given error using the Cause method when available.
func (kind *Error) Is(err error) bool {
	// Reflect usage is necessary to correctly compare with a nil
	// implementation of an error.
	if kind == nil {
		if err == nil {
			return true
		}
		return reflect.ValueOf(err).IsNil()
	}

	for {
		if err == kind {
			return true
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Code returns the registered code of the root of the given error, or
// code 1 when the error does not originate from a registered kind.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	for {
		if coder, ok := err.(interface{ Code() uint32 }); ok {
			return coder.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return 1
		}
	}
}

// Wrap extends the given error with additional information.
//
// If err is nil, this returns nil, avoiding the need for an if
// statement when wrapping an error returned at the end of a function.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}

	// If this error does not carry the stacktrace information yet,
	// attach one. This should be done only once per error at the lowest
	// frame possible (most inner wrap).
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}

	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends the given error with additional information. This
// function works like Wrap with formatting of the description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Code exposes the root code through any number of wrap layers.
func (e *wrappedError) Code() uint32 {
	return Code(e.parent)
}

// Recover captures a panic and stops its propagation. If a panic
// happens it is transformed into an ErrPanic instance and assigned to
// the given error. Call this function using defer in order to work as
// expected.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// stackTrace returns the first found stack trace frames in the chain of
// wrapped errors, or nil when no stack trace is attached yet.
func stackTrace(err error) errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return nil
		}
	}
}

// causer is an interface implemented by an error that supports
// wrapping. Use it to test if an error wraps another error instance.
type causer interface {
	Cause() error
}
