package store

import (
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

func memStoreConstructor() (CacheableKVStore, func()) {
	return MemStore(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memStoreConstructor).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memStoreConstructor).CacheConflicts(t)
}

func TestBTreeCacheIterators(t *testing.T) {
	NewTestSuite(memStoreConstructor).Iterators(t)
}

func TestBTreeCacheableOverEmptyStore(t *testing.T) {
	// devnull is a black hole, writes never reach any data
	devnull := BTreeCacheable{EmptyKVStore{}}
	cache := devnull.CacheWrap()

	k, v := []byte("wallet"), []byte("funds")
	assert.Nil(t, cache.Set(k, v))
	got, err := cache.Get(k)
	assert.Nil(t, err)
	assert.Equal(t, v, got)

	assert.Nil(t, cache.Write())
	got, err = devnull.Get(k)
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	batch := base.NewBatch()
	assert.Nil(t, batch.Set([]byte("a"), []byte("1")))
	assert.Nil(t, batch.Delete([]byte("b")))
	assert.Equal(t, 2, len(batch.(*NonAtomicBatch).ShowOps()))

	has, err := base.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, batch.Write())
	has, err = base.Has([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)
	assert.Equal(t, 0, len(batch.(*NonAtomicBatch).ShowOps()))
}

func TestSliceIterator(t *testing.T) {
	iter := NewSliceIterator([]Model{{Key: []byte("a"), Value: []byte("1")}})
	k, v, err := iter.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("a"), k)
	assert.Equal(t, []byte("1"), v)

	_, _, err = iter.Next()
	assert.IsErr(t, errors.ErrIteratorDone, err)
	iter.Release()
}
