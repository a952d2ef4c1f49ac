package orm

import (
	"github.com/crosslock/crosslock"
)

// Validater is any struct that can be validated. Not the same as a
// Validator, which votes on the blocks.
type Validater interface {
	Validate() error
}

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to set the full database key. Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	// Validate returns an error if the object is not in a valid state
	// to save to the db (eg. field missing, out of range, ...).
	Validater

	Value() crosslock.Persistent
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an intelligent Value that can be embedded in a
// simple object to handle much of the details.
type CloneableData interface {
	Validater
	crosslock.Persistent
	Copy() CloneableData
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db crosslock.ReadOnlyKVStore, key []byte) (Object, error)
}
