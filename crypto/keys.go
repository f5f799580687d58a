package crypto

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"golang.org/x/crypto/ed25519"
)

// Signer is the functionality we use from a private key. No serializing to
// support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var _ Signer = (*PrivateKey)(nil)

// DeriveKeys returns n private keys derived from given phrase. The seed of
// the key at position i is sha256(phrase || uint32be(i)), so the same phrase
// always produces the same accounts.
func DeriveKeys(phrase string, n int) ([]*PrivateKey, error) {
	if strings.TrimSpace(phrase) == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "seed phrase")
	}
	if n < 1 {
		return nil, errors.Wrapf(errors.ErrInput, "account count must be positive, got %d", n)
	}
	keys := make([]*PrivateKey, n)
	for i := range keys {
		keys[i] = PrivKeyEd25519FromSeed(derivedSeed(phrase, uint32(i)))
	}
	return keys, nil
}

func derivedSeed(phrase string, index uint32) []byte {
	idx := make([]byte, 4)
	binary.BigEndian.PutUint32(idx, index)
	h := sha256.New()
	_, _ = h.Write([]byte(phrase))
	_, _ = h.Write(idx)
	return h.Sum(nil)
}

// ParsePrivateKeyHex decodes a hex encoded private key. Both the 32 byte
// seed and the full 64 byte key forms are accepted.
func ParsePrivateKeyHex(s string) (*PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "private key: %s", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return PrivKeyEd25519FromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return &PrivateKey{Ed25519: raw}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "private key has invalid length %d", len(raw))
	}
}

// Addresses returns the addresses controlled by given keys, in order.
func Addresses(keys []*PrivateKey) []quorum.Address {
	res := make([]quorum.Address, len(keys))
	for i, k := range keys {
		res[i] = k.PublicKey().Address()
	}
	return res
}
