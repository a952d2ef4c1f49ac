/*
Package crosslock defines the common interfaces that tie the extension
packages together: messages and transactions, handlers and decorators,
the key-value store family, query routing, and the context helpers that
carry the externally supplied call environment (caller identities,
logical height, chain id, logger).

The actual protocol logic lives under x/: swaps, multi-sig approvals,
confidential proofs, mixing pools and the fee treasury. The app package
composes them into one dispatchable unit, and cmd/crosslockd hosts that
unit behind an HTTP surface.

Time inside the core is a logical height: a monotonically increasing
counter supplied by the host on every call. Nothing in this module reads
a wall clock.
*/
package crosslock
