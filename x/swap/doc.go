/*
Package swap implements the hash-time-locked exchange lifecycle.

A swap is created by an initiator against a participant with a hash
lock and a relative time lock. The participant claims it by revealing
the preimage before expiration; the initiator refunds it after
expiration. Both outcomes are terminal and mutually exclusive. When a
swap requires more than one approval, the claim additionally demands
quorum, tracked by the multisig package on counters stored here.

The target-chain leg of a swap (token, chain, destination address) is
opaque metadata. No value moves inside this core: custody is external,
the package only operates the state machine.
*/
package swap
