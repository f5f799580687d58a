package cash

import "github.com/iov-one/quorum/errors"

// ErrEmptyAccount is returned when the source account holds no funds at all.
var ErrEmptyAccount = errors.Register(130, "empty account")
