package swap

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/crosslock/crosslock"
)

// SwapIDSize is the byte length of a derived swap identifier.
const SwapIDSize = blake2b.Size256

// DeriveSwapID computes the deterministic identifier of a swap from
// its creation parameters. Each field is length delimited before
// hashing so that no two distinct inputs collide by concatenation.
func DeriveSwapID(initiator, participant crosslock.Address, height int64, hashLock []byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails with a bad key
	}
	writeDelimited(h, initiator)
	writeDelimited(h, participant)
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(height))
	writeDelimited(h, raw[:])
	writeDelimited(h, hashLock)
	return h.Sum(nil)
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func writeDelimited(h hashWriter, field []byte) {
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(field)))
	_, _ = h.Write(size[:])
	_, _ = h.Write(field)
}
