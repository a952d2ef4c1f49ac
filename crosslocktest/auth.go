package crosslocktest

import (
	"context"
	"fmt"

	"github.com/crosslock/crosslock"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced addresses. You can
// use either the Signer or the Signers attribute (or both); all entries
// are considered each time.
type Auth struct {
	// Signer is a convenience attribute when authenticating a single
	// identity.
	Signer crosslock.Address

	// Signers authenticates multiple identities.
	Signers []crosslock.Address
}

func (a *Auth) GetSigners(crosslock.Context) []crosslock.Address {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx crosslock.Context, addr crosslock.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing the x.Authenticator interface that is
// using the context to store and retrieve the signers.
type CtxAuth struct {
	// Key used to set and retrieve signers from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx crosslock.Context, signers ...crosslock.Address) crosslock.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), signers)
}

func (a *CtxAuth) GetSigners(ctx crosslock.Context) []crosslock.Address {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	signers, ok := val.([]crosslock.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []crosslock.Address got %T", val))
	}
	return signers
}

func (a *CtxAuth) HasAddress(ctx crosslock.Context, addr crosslock.Address) bool {
	for _, s := range a.GetSigners(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

type ctxAuthKey string
