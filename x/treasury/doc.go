/*
Package treasury implements the governance side of the protocol: a
single administrator identity and the accumulated protocol fee balance,
together with the fee calculator used by the swap engine.

The treasury is a singleton record in its own bucket, mutated only
through the handlers in this package and through the Controller used by
other extensions to credit fees.
*/
package treasury
