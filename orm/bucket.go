/*
Package orm provides an easy to use db wrapper.

It breaks the state space into prefixed sections called Buckets. Each
bucket contains only one type of object and has a primary index, which
may be composite. Buckets expose easy queries for one record and for
prefix ranges.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,12}$`).MatchString

// Bucket is a generic holder that stores data as well as references to
// sequences.
//
// This is a generic building block that should generally be embedded in
// a type-safe wrapper to ensure all data is the same type. Bucket is a
// prefixed subspace of the DB; proto defines the default Model, all
// elements of this type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

var _ crosslock.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket with the QueryRouter. You can define a
// name here for queries, which is different than the bucket name used
// to prefix the data.
func (b Bucket) Register(name string, r crosslock.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db crosslock.ReadOnlyKVStore, mod string, data []byte) ([]crosslock.Model, error) {
	switch mod {
	case crosslock.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []crosslock.Model{{Key: key, Value: value}}, nil
	case crosslock.PrefixQueryMod:
		prefix := b.DBKey(data)
		return queryPrefix(db, prefix)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod: %q", mod)
	}
}

// DBKey is the full key we store in the db, including the bucket
// prefix. We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element.
func (b Bucket) Get(db crosslock.ReadOnlyKVStore, key []byte) (Object, error) {
	dbkey := b.DBKey(key)
	bz, err := db.Get(dbkey)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data (crosslock.Model) and reconstructs
// the data this Bucket would return. Used internally as part of Get, it
// is exposed mainly as a test helper.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrap(err, "parse bucket value")
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write the object, making sure it validates first.
func (b Bucket) Save(db crosslock.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid object")
	}

	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db crosslock.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	return db.Delete(dbkey)
}

// Has checks if a record is stored under this key.
func (b Bucket) Has(db crosslock.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// queryPrefix collects all models stored under keys with the given
// prefix, in ascending key order.
func queryPrefix(db crosslock.ReadOnlyKVStore, prefix []byte) ([]crosslock.Model, error) {
	iter, err := db.Iterator(prefix, prefixUpperBound(prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var res []crosslock.Model
	for iter.Valid() {
		res = append(res, crosslock.Pair(
			append([]byte(nil), iter.Key()...),
			append([]byte(nil), iter.Value()...),
		))
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixUpperBound returns the smallest key that is strictly greater
// than every key starting with the prefix, or nil when no such bound
// exists.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
