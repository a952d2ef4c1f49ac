package crosslock

// Handler is a core engine that can process a few specific messages.
// This could represent "initiate a swap", or "join a mixing pool".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a
// transaction. It is its own interface to allow better type controls in
// the next arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// logging, panic recovery, or savepoint isolation, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of
// a Router.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult captures any non-error response from validating a call.
type CheckResult struct {
	// Data is a machine-parseable return value, like the id the call
	// would produce.
	Data []byte

	// Log is human readable.
	Log string

	// GasAllocated is the maximum units of work we allow this call to
	// perform.
	GasAllocated int64
}

// DeliverResult captures any non-error response from executing a call.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the id of a
	// created entity.
	Data []byte

	// Log is human readable.
	Log string
}
