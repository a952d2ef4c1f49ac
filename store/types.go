package store

import "github.com/crosslock/crosslock"

// Move references for all storage types into this package for shorter
// names everywhere.

type ReadOnlyKVStore = crosslock.ReadOnlyKVStore
type KVStore = crosslock.KVStore
type SetDeleter = crosslock.SetDeleter
type Batch = crosslock.Batch
type Iterator = crosslock.Iterator
type CacheableKVStore = crosslock.CacheableKVStore
type KVCacheWrap = crosslock.KVCacheWrap
type Model = crosslock.Model
