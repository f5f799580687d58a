package store

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

// TestSuite runs the same set of checks against any CacheableKVStore
// implementation. The store is created by the constructor, the rest of the
// logic only uses the KVStore interfaces.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function that releases
// its resources.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that runs against stores created by given
// constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks reads and writes through nested cache wraps, including
// writing and discarding them.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("owner"), []byte("alice")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// data written to the cache is not visible in the base
	k2, v2 := []byte("required"), []byte("3")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// discarded changes are lost
	k3, v3 := []byte("pending"), []byte("tx")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// deletes are propagated on write
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that a child can overwrite and delete values of its
// parent without affecting it until written.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := seqKeys("k", 4)
	vs := seqKeys("v", 12)

	parent, cleanup := s.makeBase()
	defer cleanup()

	for _, op := range []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])} {
		assert.Nil(t, op.Apply(parent))
	}
	child := parent.CacheWrap()
	for _, op := range []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])} {
		assert.Nil(t, op.Apply(child))
	}

	parentView := []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)}
	childView := []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])}

	for _, q := range parentView {
		s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
	}
	for _, q := range childView {
		s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
	}
	assert.Nil(t, child.Write())
	for _, q := range childView {
		s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
	}
}

// Iterators checks ranged iteration in both directions over combined parent
// and child data, with overwrites and deletes.
func (s *TestSuite) Iterators(t *testing.T) {
	ms := seqModels(12)
	a, b, c, d := ms[1], ms[3], ms[5], ms[7]
	a2 := Model{Key: a.Key, Value: []byte("a2")}
	b2 := Model{Key: b.Key, Value: []byte("b2")}

	expect0 := []Model{a, b, c}
	expect1 := []Model{a2, b2, c, d}

	cases := map[string]iterCase{
		"iterate in child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, expect0[2].Key, false, expect0[1:2]},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"iterate over parent only": {
			pre: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, nil, false, expect0[1:]},
				{nil, expect0[2].Key, true, reverse(expect0[:2])},
			},
		},
		"simple combination": {
			pre:   makeSetOps(a, b),
			child: makeSetOps(c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, expect0[2].Key, false, expect0[1:2]},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"overwritten data shows child data": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, expect1},
				{expect1[1].Key, expect1[3].Key, false, expect1[1:3]},
				{nil, nil, true, reverse(expect1)},
			},
		},
		"deleted data is skipped": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, c.Key, false, nil},
				{nil, nil, true, []Model{c}},
			},
		},
		"many entries on both levels": {
			pre:   makeSetOps(ms[0], ms[2], ms[4], ms[6], ms[8], ms[10]),
			child: append(makeSetOps(ms[1], ms[3], ms[9], ms[11]), makeDelOps(ms[4], ms[5])...),
			queries: []rangeQuery{
				{nil, nil, false, pick(ms, 0, 1, 2, 3, 6, 8, 9, 10, 11)},
				{ms[3].Key, ms[10].Key, false, pick(ms, 3, 6, 8, 9)},
				{ms[3].Key, ms[10].Key, true, pick(ms, 9, 8, 6, 3)},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// AssertGetHas ensures that both Get and Has of the store return expected
// results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// seqKeys returns count ordered keys with given prefix.
func seqKeys(prefix string, count int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = []byte(fmt.Sprintf("%s%04d", prefix, i))
	}
	return res
}

// seqModels returns count models ordered by key.
func seqModels(count int) []Model {
	keys := seqKeys("key", count)
	res := make([]Model, count)
	for i, k := range keys {
		res[i] = Model{Key: k, Value: []byte(fmt.Sprintf("value-%d", i))}
	}
	return res
}

func pick(ms []Model, idx ...int) []Model {
	res := make([]Model, len(idx))
	for i, n := range idx {
		res[i] = ms[n]
	}
	return res
}

// iterCase is a test case for iteration
type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range i.pre {
		assert.Nil(t, op.Apply(base))
	}

	child := base.CacheWrap()
	for _, op := range i.child {
		assert.Nil(t, op.Apply(child))
	}

	for _, q := range i.queries {
		var iter Iterator
		var err error
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for n := 0; n < len(q.expected); n++ {
			key, value, err := iter.Next()
			assert.Nil(t, err)
			if !bytes.Equal(q.expected[n].Key, key) {
				t.Fatalf("expected key %d: %q, got %q", n, q.expected[n].Key, key)
			}
			assert.Equal(t, q.expected[n].Value, value)
		}
		_, _, err = iter.Next()
		if !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("expected ErrIteratorDone, got %+v", err)
		}
		iter.Release()
	}
}

// rangeQuery checks the results of iteration
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
