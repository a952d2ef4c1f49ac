package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock/crosslocktest"
)

func TestDeriveSwapIDDeterministic(t *testing.T) {
	initiator := crosslocktest.NewAddress()
	participant := crosslocktest.NewAddress()
	hashLock := crosslocktest.RandomBytes(HashLockSize)

	a := DeriveSwapID(initiator, participant, 100, hashLock)
	b := DeriveSwapID(initiator, participant, 100, hashLock)
	assert.Equal(t, a, b)
	assert.Len(t, a, SwapIDSize)
}

func TestDeriveSwapIDUnique(t *testing.T) {
	initiator := crosslocktest.NewAddress()
	participant := crosslocktest.NewAddress()
	hashLock := crosslocktest.RandomBytes(HashLockSize)

	base := DeriveSwapID(initiator, participant, 100, hashLock)

	cases := map[string][]byte{
		"different initiator":   DeriveSwapID(crosslocktest.NewAddress(), participant, 100, hashLock),
		"different participant": DeriveSwapID(initiator, crosslocktest.NewAddress(), 100, hashLock),
		"different height":      DeriveSwapID(initiator, participant, 101, hashLock),
		"different hash lock":   DeriveSwapID(initiator, participant, 100, crosslocktest.RandomBytes(HashLockSize)),
		"swapped parties":       DeriveSwapID(participant, initiator, 100, hashLock),
	}
	for testName, id := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.NotEqual(t, base, id)
			assert.Len(t, id, SwapIDSize)
		})
	}
}
