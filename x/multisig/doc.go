/*
Package multisig tracks per-signer approvals for multi-signature gated
swaps.

A swap created with a required approval count above one cannot be
claimed until enough distinct parties have approved it. This package
records one Approval per (swap, signer) pair and increments the
approval counter on the swap record the first time a given signer
approves. Repeat approvals by the same signer refresh the recorded
height and succeed without touching the counter, so the counter can
never grow past the set of authorized identities.

Signature payloads are opaque to the tracker. An injected
SignatureVerifier inspects them before anything is recorded; the
shipped AcceptAllVerifier is a placeholder for hosts that authenticate
callers by other means.
*/
package multisig
