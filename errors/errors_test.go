package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedKind(t *testing.T) {
	cases := map[string]struct {
		kind *Error
		err  error
		want bool
	}{
		"bare kind matches itself": {
			kind: ErrUnauthorized,
			err:  ErrUnauthorized,
			want: true,
		},
		"single wrap": {
			kind: ErrSwapNotFound,
			err:  Wrap(ErrSwapNotFound, "swap 1234"),
			want: true,
		},
		"double wrap": {
			kind: ErrTimelockActive,
			err:  Wrap(Wrap(ErrTimelockActive, "inner"), "outer"),
			want: true,
		},
		"different kind": {
			kind: ErrAlreadyClaimed,
			err:  Wrap(ErrInvalidRefund, "already refunded"),
			want: false,
		},
		"stdlib error": {
			kind: ErrInput,
			err:  fmt.Errorf("plain"),
			want: false,
		},
		"nil error": {
			kind: ErrInput,
			err:  nil,
			want: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.kind.Is(tc.err))
		})
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	err := Wrapf(ErrPoolClosed, "pool %X", []byte{0xaa})
	assert.Equal(t, ErrPoolClosed.Code(), Code(err))

	assert.Equal(t, uint32(1), Code(fmt.Errorf("unregistered")))
	assert.Equal(t, uint32(0), Code(nil))
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "no-op"))
}

func TestRegisterRejectsReusedCode(t *testing.T) {
	assert.Panics(t, func() {
		Register(ErrUnauthorized.Code(), "unauthorized again")
	})
}

func TestRecoverTurnsPanicIntoError(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
		panic("kaboom")
	}()
	assert.True(t, ErrPanic.Is(err))
}

func TestWrappedMessageContainsAllLayers(t *testing.T) {
	err := Wrap(Wrap(ErrInvalidHash, "preimage mismatch"), "claim")
	assert.Equal(t, "claim: preimage mismatch: invalid hash", err.Error())
}
