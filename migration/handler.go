package migration

import (
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
)

const setCompletedCost int64 = 10

// RegisterRoutes registers the Migrations handlers.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator) {
	r.Handle(SetCompletedMsg{}.Path(), &setCompletedHandler{auth: auth, b: NewBucket()})
}

// RegisterQuery registers Migrations instances under "/migrations"
func RegisterQuery(qr quorum.QueryRouter) {
	NewBucket().Register("migrations", qr)
}

type setCompletedHandler struct {
	auth x.Authenticator
	b    orm.ModelBucket
}

var _ quorum.Handler = (*setCompletedHandler)(nil)

func (h *setCompletedHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: setCompletedCost}, nil
}

func (h *setCompletedHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, m, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	m.LastCompletedMigration = msg.Completed
	if _, err := h.b.Put(db, msg.Contract, m); err != nil {
		return nil, errors.Wrap(err, "save migrations")
	}
	res := &quorum.DeliverResult{}
	res.AddTag("migration", strconv.FormatUint(msg.Completed, 10))
	return res, nil
}

func (h *setCompletedHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*SetCompletedMsg, *Migrations, error) {
	var msg SetCompletedMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	m, err := Load(db, msg.Contract)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, m.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	if msg.Completed < m.LastCompletedMigration {
		return nil, nil, errors.Wrapf(ErrBackwards, "%d is before %d", msg.Completed, m.LastCompletedMigration)
	}
	return &msg, m, nil
}
