package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("counter", "id")

	cur, err := s.Current(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), cur)

	var last []byte
	for want := uint64(1); want <= 3; want++ {
		val, err := s.NextVal(db)
		assert.Nil(t, err)
		if bytes.Compare(last, val) >= 0 {
			t.Fatalf("sequence value %X is not greater than %X", val, last)
		}
		last = val
		n, err := DecodeSequence(val)
		assert.Nil(t, err)
		assert.Equal(t, want, n)
	}

	n, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(4), n)

	// sequences are independent
	other := NewSequence("counter", "other")
	n, err = other.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)

	raw, err := db.Get([]byte("_s.counter:id"))
	assert.Nil(t, err)
	assert.Equal(t, EncodeSequence(4), raw)
}

func TestDecodeSequence(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		want    uint64
		wantErr *errors.Error
	}{
		"valid":        {raw: EncodeSequence(42), want: 42},
		"empty":        {raw: nil, wantErr: errors.ErrEmpty},
		"wrong length": {raw: []byte{1, 2, 3}, wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := DecodeSequence(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"nil":            {nil, nil, nil},
		"simple":         {[]byte("ab"), []byte("ab"), []byte("ac")},
		"carry":          {[]byte{1, 0xff}, []byte{1, 0xff}, []byte{2}},
		"no upper bound": {[]byte{0xff, 0xff}, []byte{0xff, 0xff}, nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
