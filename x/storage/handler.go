package storage

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const setCost int64 = 10

// RegisterRoutes registers the storage handlers. Changing the value
// requires no authentication.
func RegisterRoutes(r quorum.Registry) {
	r.Handle(SetMsg{}.Path(), &setHandler{b: NewBucket()})
}

// RegisterQuery registers storage instances under "/storage"
func RegisterQuery(qr quorum.QueryRouter) {
	NewBucket().Register("storage", qr)
}

type setHandler struct {
	b orm.ModelBucket
}

func (h *setHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: setCost}, nil
}

func (h *setHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, s, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	s.Value = msg.Value
	if _, err := h.b.Put(db, msg.Contract, s); err != nil {
		return nil, errors.Wrap(err, "save storage")
	}
	res := &quorum.DeliverResult{}
	res.AddTag("contract", msg.Contract.String())
	return res, nil
}

func (h *setHandler) validate(db quorum.KVStore, tx quorum.Tx) (*SetMsg, *Storage, error) {
	var msg SetMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var s Storage
	if err := h.b.One(db, msg.Contract, &s); err != nil {
		return nil, nil, errors.Wrap(err, "contract")
	}
	return &msg, &s, nil
}
