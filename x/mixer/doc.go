/*
Package mixer implements anonymity pools.

A pool collects deposits of similar size. Once the number of
participants reaches the pool's activation threshold the pool becomes
active, and from then on each participant may withdraw to a blinded
output address, but only inside a bounded window that opens a fixed
delay after pool creation. The delay decouples deposit time from payout
time and the window bound keeps funds from being locked forever.

Participants are keyed by a dense index assigned at join time. The
index is the caller's handle for withdrawal, deliberately decoupled
from the identity that joined.
*/
package mixer
