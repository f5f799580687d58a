package store

import (
	"bytes"

	"github.com/iov-one/quorum/errors"
)

// cacheIterator merges the cached items with the parent iterator. Cached
// items shadow parent entries with the same key, deleted items hide them.
type cacheIterator struct {
	items     []keyer
	idx       int
	parent    Iterator
	ascending bool

	// peeked parent entry
	pkey, pvalue []byte
	peeked       bool
	parentDone   bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, ascending bool) *cacheIterator {
	return &cacheIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

func (c *cacheIterator) peekParent() error {
	if c.peeked || c.parentDone {
		return nil
	}
	k, v, err := c.parent.Next()
	switch {
	case err == nil:
		c.pkey, c.pvalue, c.peeked = k, v, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		c.parentDone = true
		return nil
	default:
		return err
	}
}

func (c *cacheIterator) Next() ([]byte, []byte, error) {
	for {
		if err := c.peekParent(); err != nil {
			return nil, nil, err
		}
		hasOwn := c.idx < len(c.items)

		if !hasOwn && !c.peeked {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		useOwn := hasOwn
		if hasOwn && c.peeked {
			cmp := bytes.Compare(c.items[c.idx].Key(), c.pkey)
			if !c.ascending {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				useOwn = false
			case cmp == 0:
				// Cached value shadows the parent one.
				c.peeked = false
			}
		}

		if !useOwn {
			c.peeked = false
			return c.pkey, c.pvalue, nil
		}

		item := c.items[c.idx]
		c.idx++
		if set, ok := item.(setItem); ok {
			return set.Key(), set.value, nil
		}
		// deleted, continue with the next entry
	}
}

func (c *cacheIterator) Release() {
	c.parent.Release()
	c.items = nil
}
