package orm

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

const indexPrefix = "_i."

var isIndexName = regexp.MustCompile(`^[a-z_]{2,20}$`).MatchString

// Indexer calculates the secondary index key for a given model. Returning a
// nil key excludes the model from the index.
type Indexer func(Model) ([]byte, error)

// MultiKeyIndexer calculates all secondary index keys for a given model.
type MultiKeyIndexer func(Model) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(m Model) ([][]byte, error) {
		key, err := indexer(m)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}

// index stores all primary keys indexed under the same value as a set,
// serialized under a single database key. A unique index stores exactly one
// primary key per value.
type index struct {
	name   string
	id     []byte
	unique bool
	keys   MultiKeyIndexer
	bucket *modelBucket
}

var _ quorum.QueryHandler = (*index)(nil)

// refs is the stored representation of a non unique index entry.
type refs struct {
	Refs [][]byte
}

func newIndex(b *modelBucket, name string, keys MultiKeyIndexer, unique bool) *index {
	if !isIndexName(name) {
		panic(fmt.Sprintf("illegal index name: %q", name))
	}
	return &index{
		name:   name,
		id:     []byte(indexPrefix + b.name + "_" + name + ":"),
		unique: unique,
		keys:   keys,
		bucket: b,
	}
}

// dbKey returns the absolute key of the index entry for given value.
func (i *index) dbKey(value []byte) []byte {
	out := make([]byte, len(i.id)+len(value))
	copy(out, i.id)
	copy(out[len(i.id):], value)
	return out
}

// update moves the primary key from all index entries computed for prev to
// all index entries computed for next. A nil model means insert or delete.
func (i *index) update(db quorum.KVStore, pk []byte, prev, next Model) error {
	var prevKeys, nextKeys [][]byte
	if prev != nil {
		keys, err := i.keys(prev)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		prevKeys = keys
	}
	if next != nil {
		keys, err := i.keys(next)
		if err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
		nextKeys = keys
	}

	for _, k := range prevKeys {
		if containsKey(nextKeys, k) {
			continue
		}
		if err := i.remove(db, k, pk); err != nil {
			return err
		}
	}
	for _, k := range nextKeys {
		if containsKey(prevKeys, k) {
			continue
		}
		if err := i.insert(db, k, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i *index) insert(db quorum.KVStore, value, pk []byte) error {
	key := i.dbKey(value)
	if i.unique {
		cur, err := db.Get(key)
		if err != nil {
			return errors.Wrap(err, "cannot load index")
		}
		if cur != nil && !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrDuplicate, "unique index %s: %X", i.name, value)
		}
		return db.Set(key, pk)
	}

	refs, err := i.loadRefs(db, key)
	if err != nil {
		return err
	}
	if containsKey(refs, pk) {
		return nil
	}
	refs = append(refs, pk)
	sort.Slice(refs, func(a, b int) bool { return bytes.Compare(refs[a], refs[b]) < 0 })
	return i.storeRefs(db, key, refs)
}

func (i *index) remove(db quorum.KVStore, value, pk []byte) error {
	key := i.dbKey(value)
	if i.unique {
		return db.Delete(key)
	}

	refs, err := i.loadRefs(db, key)
	if err != nil {
		return err
	}
	for n, r := range refs {
		if bytes.Equal(r, pk) {
			refs = append(refs[:n], refs[n+1:]...)
			return i.storeRefs(db, key, refs)
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "index %s does not reference %X", i.name, pk)
}

func (i *index) loadRefs(db quorum.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	raw, err := db.Get(key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load index")
	}
	if raw == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var r refs
	if err := codec.Unmarshal(raw, &r); err != nil {
		return nil, errors.Wrapf(err, "index %s", i.name)
	}
	return r.Refs, nil
}

func (i *index) storeRefs(db quorum.KVStore, key []byte, keys [][]byte) error {
	if len(keys) == 0 {
		return db.Delete(key)
	}
	raw, err := codec.Marshal(refs{Refs: keys})
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

// primaryKeys returns all primary keys indexed under given value.
func (i *index) primaryKeys(db quorum.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	return i.loadRefs(db, i.dbKey(value))
}

// prefixKeys returns all primary keys indexed under values that begin with
// given prefix.
func (i *index) prefixKeys(db quorum.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	it, err := db.Iterator(prefixRange(i.dbKey(prefix)))
	if err != nil {
		return nil, err
	}
	defer it.Release()

	var res [][]byte
	for {
		key, _, err := it.Next()
		switch {
		case err == nil:
			pks, err := i.loadRefs(db, key)
			if err != nil {
				return nil, err
			}
			res = append(res, pks...)
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}

// Query handles queries from the QueryRouter. Returned models are the
// indexed entities, with their absolute database keys.
func (i *index) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	var (
		pks [][]byte
		err error
	)
	switch mod {
	case quorum.KeyQueryMod:
		pks, err = i.primaryKeys(db, data)
	case quorum.PrefixQueryMod:
		pks, err = i.prefixKeys(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	if err != nil {
		return nil, err
	}
	res := make([]quorum.Model, 0, len(pks))
	for _, pk := range pks {
		key := i.bucket.dbKey(pk)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrState, "index %s references missing %X", i.name, pk)
		}
		res = append(res, quorum.Pair(key, value))
	}
	return res, nil
}

func containsKey(keys [][]byte, key []byte) bool {
	for _, k := range keys {
		if bytes.Equal(k, key) {
			return true
		}
	}
	return false
}

// prefixRange turns a prefix into (start, end) to create an iterator over
// all keys with that prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for n := len(end) - 1; n >= 0; n-- {
		if end[n] < 0xff {
			end[n]++
			return start, end[:n+1]
		}
	}
	// prefix is all 0xff, no upper bound
	return start, nil
}
