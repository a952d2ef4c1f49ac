/*
Package zkproof is the gateway for confidential swap proofs.

Either party of a pending swap may submit an opaque proof payload. The
gateway forwards it, together with a canonical encoding of the swap
record, to an injected ProofVerifier and stores the payload with its
verification outcome and height. One proof record exists per swap;
later submissions overwrite earlier ones.

No proof system is implemented here. The shipped NonEmptyVerifier only
checks that the payload is not empty and is meant to be replaced by a
real verifier at composition time.
*/
package zkproof
