package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

// ModelIterator loads bucket entities one by one.
type ModelIterator struct {
	it     quorum.Iterator
	bucket *modelBucket
}

// LoadNext loads the next entity into dest and returns its primary key. It
// returns ErrIteratorDone when there are no more entities.
func (m *ModelIterator) LoadNext(dest Model) ([]byte, error) {
	if err := m.bucket.checkType(dest); err != nil {
		return nil, err
	}
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := codec.Unmarshal(value, dest); err != nil {
		return nil, errors.Wrapf(err, "%s %X", m.bucket.name, key)
	}
	return key[len(m.bucket.prefix):], nil
}

// Release releases the underlying iterator.
func (m *ModelIterator) Release() {
	m.it.Release()
}

// consumeIterator reads all remaining data into an array and releases the
// iterator.
func consumeIterator(it quorum.Iterator) ([]quorum.Model, error) {
	defer it.Release()

	var res []quorum.Model
	for {
		key, value, err := it.Next()
		switch {
		case err == nil:
			res = append(res, quorum.Pair(key, value))
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, err
		}
	}
}
