package app

import (
	"github.com/crosslock/crosslock"
)

// Decorators holds a chain of decorators, not yet resolved by a
// Handler.
type Decorators struct {
	chain []crosslock.Decorator
}

// ChainDecorators takes a chain of decorators and, upon adding a final
// Handler (usually the Router), returns a Handler that executes the
// whole stack. The first decorator in the chain runs first.
func ChainDecorators(chain ...crosslock.Decorator) Decorators {
	return Decorators{chain: chain}
}

// Chain appends more decorators to the chain.
func (d Decorators) Chain(chain ...crosslock.Decorator) Decorators {
	return Decorators{chain: append(d.chain, chain...)}
}

// WithHandler resolves the stack into a concrete Handler.
func (d Decorators) WithHandler(h crosslock.Handler) crosslock.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step binds one decorator to the rest of the stack.
type step struct {
	d    crosslock.Decorator
	next crosslock.Handler
}

var _ crosslock.Handler = step{}

func (s step) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
