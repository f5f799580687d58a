package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("submit transaction")
	msg2 := []byte("confirm transaction")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	bz, err := codec.Marshal(sig)
	assert.Nil(t, err)
	bz2, err := codec.Marshal(sig2)
	assert.Nil(t, err)
	if bytes.Equal(bz, bz2) {
		t.Fatal("marshaling different signatures produce the same binary representation")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg2, sig) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, &Signature{}) {
		t.Fatal("verified an empty signature of a message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}

	if _, err := (&PrivateKey{}).Sign(msg); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Validate())
	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("different public keys produce the same condition")
	}
	assert.Equal(t, pub.Condition().Address(), pub.Address())
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
	if err := empty.Validate(); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}

	bz, err := codec.Marshal(pub)
	assert.Nil(t, err)
	var read PublicKey
	assert.Nil(t, codec.Unmarshal(bz, &read))
	assert.Equal(t, read.Condition(), pub.Condition())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	cases := map[string]struct {
		seed     []byte
		expected []byte
	}{
		"success 1": {
			seed:     []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 59, 106, 39, 188, 206, 182, 164, 45, 98, 163, 168, 208, 42, 111, 13, 115, 101, 50, 21, 119, 29, 226, 67, 166, 58, 192, 72, 161, 139, 89, 218, 41},
		},
		"success 2": {
			seed:     []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31},
			expected: []byte{31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 31, 67, 4, 107, 254, 64, 146, 179, 233, 73, 148, 234, 218, 21, 220, 194, 13, 138, 170, 7, 182, 88, 253, 57, 84, 235, 142, 14, 251, 139, 220, 165, 222},
		},
		"failure no seed": {
			seed:     nil,
			expected: nil,
		},
		"failure wrong seed size (n<32)": {
			seed:     []byte{0},
			expected: nil,
		},
		"failure wrong seed size (n>32)": {
			seed:     []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: nil,
		},
	}

	for _, tc := range cases {
		if tc.expected != nil {
			privKey := PrivKeyEd25519FromSeed(tc.seed)
			assert.Equal(t, tc.expected, privKey.Ed25519)
		} else {
			assert.Panics(t, func() { PrivKeyEd25519FromSeed(tc.seed) })
		}
	}
}

func TestDeriveKeys(t *testing.T) {
	keys, err := DeriveKeys("quorum test phrase", 5)
	assert.Nil(t, err)
	assert.Equal(t, 5, len(keys))

	again, err := DeriveKeys("quorum test phrase", 3)
	assert.Nil(t, err)
	for i, k := range again {
		assert.Equal(t, keys[i].Ed25519, k.Ed25519)
	}

	addrs := Addresses(keys)
	seen := make(map[string]bool)
	for _, a := range addrs {
		assert.Nil(t, a.Validate())
		if seen[a.String()] {
			t.Fatalf("duplicated address %s", a)
		}
		seen[a.String()] = true
	}

	other, err := DeriveKeys("another phrase", 1)
	assert.Nil(t, err)
	if bytes.Equal(other[0].Ed25519, keys[0].Ed25519) {
		t.Fatal("different phrases produce the same key")
	}

	if _, err := DeriveKeys(" ", 1); !errors.ErrEmpty.Is(err) {
		t.Fatalf("want empty error, got %+v", err)
	}
	if _, err := DeriveKeys("phrase", 0); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestParsePrivateKeyHex(t *testing.T) {
	key := GenPrivKeyEd25519()
	seed := key.Ed25519[:32]

	cases := map[string]struct {
		raw     string
		want    []byte
		wantErr *errors.Error
	}{
		"full key":       {raw: hex.EncodeToString(key.Ed25519), want: key.Ed25519},
		"seed only":      {raw: hex.EncodeToString(seed), want: key.Ed25519},
		"0x prefix":      {raw: "0x" + hex.EncodeToString(seed), want: key.Ed25519},
		"not hex":        {raw: "zz", wantErr: errors.ErrInput},
		"invalid length": {raw: "abcd", wantErr: errors.ErrInput},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParsePrivateKeyHex(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got.Ed25519)
			}
		})
	}
}
