package crosslocktest

import (
	"crypto/rand"

	"github.com/crosslock/crosslock"
)

// NewAddress returns a random caller identity. Each call returns a
// different address.
func NewAddress() crosslock.Address {
	return crosslock.NewAddress(randomBytes(32))
}

// RandomBytes returns a buffer of the given size filled with random
// data. Use it for hash locks, preimages and opaque payloads.
func RandomBytes(size int) []byte {
	return randomBytes(size)
}

func randomBytes(size int) []byte {
	bz := make([]byte, size)
	if _, err := rand.Read(bz); err != nil {
		panic(err)
	}
	return bz
}
