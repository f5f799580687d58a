package artifact

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
)

const deployCost int64 = 50

// RegisterRoutes registers the deployment handler.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, artifacts *Registry) {
	r.Handle(DeployContractMsg{}.Path(), NewDeployHandler(auth, artifacts))
}

// RegisterQuery will register instances under "/instances"
func RegisterQuery(qr quorum.QueryRouter) {
	NewBucket().Register("instances", qr)
}

// Deploy creates a new instance of the artifact. The instance address is
// derived from the next value of the chain wide instance sequence.
func Deploy(ctx quorum.Context, db quorum.KVStore, a Artifact, creator quorum.Address, args ConstructorArgs) (*Instance, error) {
	seq, err := orm.NewSequence(ExtensionName, "instance").NextInt(db)
	if err != nil {
		return nil, errors.Wrap(err, "instance sequence")
	}
	height, _ := quorum.GetHeight(ctx)
	inst := &Instance{
		Metadata: quorum.Metadata{Schema: 1},
		Artifact: a.Name(),
		Creator:  creator,
		Address:  InstanceCondition(seq).Address(),
		Seq:      seq,
		Height:   height,
	}
	if err := a.Instantiate(ctx, db, inst.Address, creator, args); err != nil {
		return nil, errors.Wrapf(err, "instantiate %s", a.Name())
	}
	if _, err := NewBucket().Put(db, inst.Address, inst); err != nil {
		return nil, errors.Wrap(err, "save instance")
	}
	return inst, nil
}

// DeployHandler creates contract instances.
type DeployHandler struct {
	auth      x.Authenticator
	artifacts *Registry
}

var _ quorum.Handler = DeployHandler{}

// NewDeployHandler returns a handler for DeployContractMsg.
func NewDeployHandler(auth x.Authenticator, artifacts *Registry) DeployHandler {
	return DeployHandler{auth: auth, artifacts: artifacts}
}

func (h DeployHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{GasAllocated: deployCost}, nil
}

func (h DeployHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	creator, a, args, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	inst, err := Deploy(ctx, db, a, creator, args)
	if err != nil {
		return nil, err
	}
	deploymentsCounter.WithLabelValues(a.Name()).Inc()

	quorum.GetLogger(ctx).Info("contract deployed",
		"artifact", a.Name(),
		"instance", inst.Address)

	res := &quorum.DeliverResult{Data: inst.Address}
	res.AddTag("artifact", a.Name())
	res.AddTag("instance", inst.Address.String())
	return res, nil
}

func (h DeployHandler) validate(ctx quorum.Context, tx quorum.Tx) (quorum.Address, Artifact, ConstructorArgs, error) {
	var msg DeployContractMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "creator signature missing")
	}
	a, err := h.artifacts.Lookup(msg.Artifact)
	if err != nil {
		return nil, nil, nil, err
	}
	args, err := decodeArgs(a, msg.Args)
	if err != nil {
		return nil, nil, nil, err
	}
	return signer.Address(), a, args, nil
}
