package quorum

import "github.com/iov-one/quorum/errors"

// Metadata is embedded in every stored model and every message. Schema is
// the version of the entity layout and must be set.
type Metadata struct {
	Schema uint32
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be set")
	}
	return nil
}

// Copy returns a copy of the metadata.
func (m *Metadata) Copy() *Metadata {
	cpy := *m
	return &cpy
}
