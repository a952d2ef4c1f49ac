package treasury

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock/errors"
)

func TestFee(t *testing.T) {
	cases := map[string]struct {
		amount  uint64
		rate    uint32
		want    uint64
		wantErr *errors.Error
	}{
		"swap fee on 10000": {
			amount: 10000,
			rate:   5,
			want:   50,
		},
		"protocol fee on 10000": {
			amount: 10000,
			rate:   2,
			want:   20,
		},
		"rounds down": {
			amount: 1999,
			rate:   5,
			want:   9,
		},
		"zero rate": {
			amount: 10000,
			rate:   0,
			want:   0,
		},
		"full rate": {
			amount: 10000,
			rate:   FeeDenominator,
			want:   10000,
		},
		"rate above denominator": {
			amount:  10000,
			rate:    FeeDenominator + 1,
			wantErr: errors.ErrInvalidFee,
		},
		"multiplication overflow": {
			amount:  math.MaxUint64,
			rate:    5,
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Fee(tc.amount, tc.rate)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The fee identity: both fees together never exceed the amount.
func TestFeeIdentity(t *testing.T) {
	for _, amount := range []uint64{1000, 1001, 9999, 10000, 1 << 40} {
		swapFee, err := Fee(amount, 5)
		assert.NoError(t, err)
		protocolFee, err := Fee(amount, 2)
		assert.NoError(t, err)
		assert.True(t, swapFee+protocolFee <= amount, "fees exceed amount %d", amount)
	}
}
