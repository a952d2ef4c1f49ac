package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crosslock/crosslock/crosslocktest"
	"github.com/crosslock/crosslock/errors"
)

func validPool() *Pool {
	return &Pool{
		Creator:             crosslocktest.NewAddress(),
		MinAmount:           1000,
		MaxAmount:           10000,
		ActivationThreshold: 2,
		CreationHeight:      10,
		ExecutionDelay:      10,
		ExecutionWindow:     20,
	}
}

func TestPoolValidate(t *testing.T) {
	cases := map[string]struct {
		mod     func(*Pool)
		wantErr *errors.Error
	}{
		"valid": {
			mod: func(*Pool) {},
		},
		"zero delay is valid": {
			mod: func(p *Pool) { p.ExecutionDelay = 0 },
		},
		"missing creator": {
			mod:     func(p *Pool) { p.Creator = nil },
			wantErr: errors.ErrInput,
		},
		"zero minimum": {
			mod:     func(p *Pool) { p.MinAmount = 0 },
			wantErr: errors.ErrState,
		},
		"maximum below minimum": {
			mod:     func(p *Pool) { p.MaxAmount = p.MinAmount - 1 },
			wantErr: errors.ErrState,
		},
		"zero threshold": {
			mod:     func(p *Pool) { p.ActivationThreshold = 0 },
			wantErr: errors.ErrState,
		},
		"negative delay": {
			mod:     func(p *Pool) { p.ExecutionDelay = -1 },
			wantErr: errors.ErrState,
		},
		"zero window": {
			mod:     func(p *Pool) { p.ExecutionWindow = 0 },
			wantErr: errors.ErrState,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			pool := validPool()
			tc.mod(pool)
			err := pool.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
			}
		})
	}
}
