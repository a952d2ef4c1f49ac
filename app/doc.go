/*
Package app assembles the extensions into one runnable state machine.

It wires the router with every message handler, wraps it in the
standard decorator stack (logging, panic recovery, per-call savepoint),
registers all buckets on the query router and owns the transaction
codec. The host, whether a test or the daemon, talks to the resulting
CrossLock value and nothing else.
*/
package app
