package migration

import "github.com/iov-one/quorum/errors"

// ErrBackwards is returned when the completed migration number would
// decrease.
var ErrBackwards = errors.Register(160, "migration cannot go backwards")
