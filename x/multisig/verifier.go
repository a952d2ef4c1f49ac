package multisig

import (
	"github.com/crosslock/crosslock"
)

// SignatureVerifier checks an opaque signature payload before an
// approval is recorded. The tracker owns no cryptographic logic; a
// production host injects a real implementation here.
type SignatureVerifier interface {
	// VerifySignature reports whether the signature payload is valid
	// for the given signer and swap id.
	VerifySignature(signer crosslock.Address, swapID, signature []byte) bool
}

// AcceptAllVerifier approves every well-formed signature payload. It
// is the shipped placeholder for hosts that authenticate callers
// upstream.
type AcceptAllVerifier struct{}

var _ SignatureVerifier = AcceptAllVerifier{}

func (AcceptAllVerifier) VerifySignature(crosslock.Address, []byte, []byte) bool {
	return true
}
