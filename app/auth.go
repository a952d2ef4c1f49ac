package app

import (
	"context"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/x"
)

type contextKey int

const contextKeySigners contextKey = iota

// WithSigners stores the authenticated caller identities in the call
// context. The host decides who signed; the state machine only reads.
func WithSigners(ctx crosslock.Context, signers ...crosslock.Address) crosslock.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticator reveals the signers stored by WithSigners.
type Authenticator struct{}

var _ x.Authenticator = Authenticator{}

func (Authenticator) GetSigners(ctx crosslock.Context) []crosslock.Address {
	signers, _ := ctx.Value(contextKeySigners).([]crosslock.Address)
	return signers
}

func (a Authenticator) HasAddress(ctx crosslock.Context, addr crosslock.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
