/*
Package x holds the glue shared by all extension packages: the
Authenticator abstraction revealing which caller identities the host
vouched for on this call, and small helpers on top of it.

The core performs no cryptographic authentication itself. The host
ledger (or the daemon harness) verifies the caller and injects the
resulting addresses into the call context; handlers only consult the
Authenticator given to them at registration time.
*/
package x

import (
	"github.com/crosslock/crosslock"
)

// Authenticator is an interface we can use to extract authentication
// info from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system, rather
// than hard-coding one implementation for all extensions.
type Authenticator interface {
	// GetSigners reveals all identities the host authenticated for
	// this call.
	GetSigners(crosslock.Context) []crosslock.Address

	// HasAddress checks if any signer matches this address.
	HasAddress(crosslock.Context, crosslock.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetSigners combines all signers from all Authenticators.
func (m MultiAuth) GetSigners(ctx crosslock.Context) []crosslock.Address {
	var res []crosslock.Address
	for _, impl := range m.impls {
		if add := impl.GetSigners(ctx); len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator vouches for this
// address.
func (m MultiAuth) HasAddress(ctx crosslock.Context, addr crosslock.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer if any, otherwise nil.
func MainSigner(ctx crosslock.Context, auth Authenticator) crosslock.Address {
	signers := auth.GetSigners(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// AnySigner returns the first of the candidate addresses that the
// Authenticator vouches for, or nil when none matches. Use it when an
// operation is open to several recorded identities and you need to know
// which one is acting.
func AnySigner(ctx crosslock.Context, auth Authenticator, candidates ...crosslock.Address) crosslock.Address {
	for _, c := range candidates {
		if auth.HasAddress(ctx, c) {
			return c
		}
	}
	return nil
}
