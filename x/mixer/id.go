package mixer

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"

	"github.com/crosslock/crosslock"
)

// PoolIDSize is the byte length of a derived pool identifier.
const PoolIDSize = blake2b.Size256

// DerivePoolID computes the deterministic identifier of a pool from
// its creator, creation height and parameters. Fields are length
// delimited before hashing.
func DerivePoolID(creator crosslock.Address, height int64, msg *CreatePoolMsg) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	write := func(field []byte) {
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(field)))
		_, _ = h.Write(size[:])
		_, _ = h.Write(field)
	}
	writeInt := func(v uint64) {
		var raw [8]byte
		binary.BigEndian.PutUint64(raw[:], v)
		write(raw[:])
	}
	write(creator)
	writeInt(uint64(height))
	writeInt(msg.MinAmount)
	writeInt(msg.MaxAmount)
	writeInt(uint64(msg.ActivationThreshold))
	writeInt(uint64(msg.ExecutionDelay))
	writeInt(uint64(msg.ExecutionWindow))
	return h.Sum(nil)
}
