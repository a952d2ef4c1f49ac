package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock/crosslocktest"
)

func statusTestSwap() *Swap {
	return &Swap{
		Initiator:        crosslocktest.NewAddress(),
		Participant:      crosslocktest.NewAddress(),
		Amount:           10000,
		HashLock:         crosslocktest.RandomBytes(HashLockSize),
		TimeLock:         100,
		CreationHeight:   10,
		ExpirationHeight: 110,
	}
}

func TestIsClaimable(t *testing.T) {
	cases := map[string]struct {
		mod    func(*Swap)
		height int64
		want   bool
	}{
		"pending swap within bounds": {
			mod:    func(*Swap) {},
			height: 50,
			want:   true,
		},
		"claimed": {
			mod:    func(s *Swap) { s.Claimed = true },
			height: 50,
			want:   false,
		},
		"refunded": {
			mod:    func(s *Swap) { s.Refunded = true },
			height: 50,
			want:   false,
		},
		"past raw time lock": {
			mod:    func(*Swap) {},
			height: 100,
			want:   false,
		},
		"past expiration": {
			mod:    func(s *Swap) { s.ExpirationHeight = 40 },
			height: 50,
			want:   false,
		},
		"quorum unmet": {
			mod:    func(s *Swap) { s.MultiSigRequired = 2 },
			height: 50,
			want:   false,
		},
		"quorum met": {
			mod: func(s *Swap) {
				s.MultiSigRequired = 2
				s.MultiSigProvided = 2
			},
			height: 50,
			want:   true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := statusTestSwap()
			tc.mod(s)
			assert.Equal(t, tc.want, IsClaimable(s, tc.height))
		})
	}

	t.Run("missing swap", func(t *testing.T) {
		assert.False(t, IsClaimable(nil, 50))
	})
}

func TestIsRefundable(t *testing.T) {
	s := statusTestSwap()
	assert.False(t, IsRefundable(s, 50))
	assert.True(t, IsRefundable(s, 110))
	assert.True(t, IsRefundable(s, 200))

	s.Claimed = true
	assert.False(t, IsRefundable(s, 200))

	assert.False(t, IsRefundable(nil, 200))
}

func TestStatusOf(t *testing.T) {
	t.Run("missing swap yields the zero status", func(t *testing.T) {
		status := StatusOf(nil, 50)
		assert.Equal(t, Status{}, status)
	})

	t.Run("pending swap", func(t *testing.T) {
		s := statusTestSwap()
		status := StatusOf(s, 50)
		assert.True(t, status.Exists)
		assert.Equal(t, StatePending, status.State)
		assert.True(t, status.Claimable)
		assert.False(t, status.Refundable)
		assert.False(t, status.Expired)
	})

	t.Run("expired swap", func(t *testing.T) {
		s := statusTestSwap()
		status := StatusOf(s, 110)
		assert.True(t, status.Expired)
		assert.False(t, status.Claimable)
		assert.True(t, status.Refundable)
	})

	t.Run("claimed swap", func(t *testing.T) {
		s := statusTestSwap()
		s.Claimed = true
		status := StatusOf(s, 50)
		assert.Equal(t, StateClaimed, status.State)
		assert.False(t, status.Claimable)
		assert.False(t, status.Refundable)
	})
}
