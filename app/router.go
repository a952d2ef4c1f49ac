package app

import (
	"regexp"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router is a registry of handlers that dispatches transactions by
// their message path. It implements Handler itself so it can terminate
// a decorator chain.
type Router struct {
	routes map[string]crosslock.Handler
}

var _ crosslock.Registry = (*Router)(nil)
var _ crosslock.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]crosslock.Handler, 10),
	}
}

// Handle registers the handler for a message path. Paths must look
// like "swap/create". Duplicate registration is a wiring error and
// panics.
func (r *Router) Handle(path string, h crosslock.Handler) {
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering path: " + path)
	}
	r.routes[path] = h
}

// handler returns the handler for the transaction's message path, or
// an error when no handler was registered there.
func (r *Router) handler(tx crosslock.Tx) (crosslock.Handler, error) {
	path := crosslock.GetPath(tx)
	if h, ok := r.routes[path]; ok {
		return h, nil
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", path)
}

func (r *Router) Check(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx crosslock.Context, db crosslock.KVStore, tx crosslock.Tx) (*crosslock.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
