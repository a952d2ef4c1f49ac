package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock/crosslocktest"
	"github.com/crosslock/crosslock/errors"
)

func validCreateMsg() *CreateSwapMsg {
	return &CreateSwapMsg{
		Initiator:     crosslocktest.NewAddress(),
		Participant:   crosslocktest.NewAddress(),
		Amount:        10000,
		HashLock:      crosslocktest.RandomBytes(HashLockSize),
		TimeLock:      100,
		SwapToken:     "ATOM",
		TargetChain:   "cosmoshub",
		TargetAddress: crosslocktest.RandomBytes(TargetAddressSize),
	}
}

func TestCreateSwapMsgValidate(t *testing.T) {
	cases := map[string]struct {
		mod     func(*CreateSwapMsg)
		wantErr *errors.Error
	}{
		"valid": {
			mod: func(*CreateSwapMsg) {},
		},
		"self swap": {
			mod: func(m *CreateSwapMsg) {
				m.Participant = m.Initiator
			},
			wantErr: errors.ErrInvalidParticipant,
		},
		"amount below minimum": {
			mod: func(m *CreateSwapMsg) {
				m.Amount = MinSwapAmount - 1
			},
			wantErr: errors.ErrInsufficientFunds,
		},
		"short hash lock": {
			mod: func(m *CreateSwapMsg) {
				m.HashLock = m.HashLock[:16]
			},
			wantErr: errors.ErrInput,
		},
		"zero time lock": {
			mod: func(m *CreateSwapMsg) {
				m.TimeLock = 0
			},
			wantErr: errors.ErrInput,
		},
		"time lock above maximum": {
			mod: func(m *CreateSwapMsg) {
				m.TimeLock = MaxTimeoutBlocks + 1
			},
			wantErr: errors.ErrTimelockExpired,
		},
		"empty token": {
			mod: func(m *CreateSwapMsg) {
				m.SwapToken = ""
			},
			wantErr: errors.ErrInput,
		},
		"empty target chain": {
			mod: func(m *CreateSwapMsg) {
				m.TargetChain = ""
			},
			wantErr: errors.ErrInput,
		},
		"short target address": {
			mod: func(m *CreateSwapMsg) {
				m.TargetAddress = m.TargetAddress[:8]
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg := validCreateMsg()
			tc.mod(msg)
			err := msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}

func TestClaimSwapMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     ClaimSwapMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: ClaimSwapMsg{
				SwapID:   crosslocktest.RandomBytes(SwapIDSize),
				Preimage: crosslocktest.RandomBytes(PreimageSize),
			},
		},
		"short swap id": {
			msg: ClaimSwapMsg{
				SwapID:   crosslocktest.RandomBytes(8),
				Preimage: crosslocktest.RandomBytes(PreimageSize),
			},
			wantErr: errors.ErrInput,
		},
		"short preimage": {
			msg: ClaimSwapMsg{
				SwapID:   crosslocktest.RandomBytes(SwapIDSize),
				Preimage: crosslocktest.RandomBytes(16),
			},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}

func TestRefundSwapMsgValidate(t *testing.T) {
	msg := RefundSwapMsg{SwapID: crosslocktest.RandomBytes(SwapIDSize)}
	assert.NoError(t, msg.Validate())

	msg = RefundSwapMsg{}
	assert.True(t, errors.ErrInput.Is(msg.Validate()))
}
