package deploy

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/client"
	quorumd "github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/artifact"
	"github.com/tendermint/tendermint/libs/log"
)

// Deployer creates contract instances on a single network. Deployments are
// sent one at a time, each call blocks until its transaction is committed.
type Deployer struct {
	client   *client.Client
	registry *Registry
	network  string
	from     crypto.Signer
	logger   log.Logger

	// migration is the number of the script currently running.
	migration int
}

// NewDeployer returns a deployer sending transactions signed by from.
func NewDeployer(c *client.Client, registry *Registry, network string, from crypto.Signer, logger log.Logger) *Deployer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Deployer{
		client:   c,
		registry: registry,
		network:  network,
		from:     from,
		logger:   logger.With("network", network),
	}
}

// Client returns the client used to talk to the network.
func (d *Deployer) Client() *client.Client {
	return d.client
}

// Network returns the name of the network deployments are made to.
func (d *Deployer) Network() string {
	return d.network
}

// Registry returns the registry deployments are recorded in.
func (d *Deployer) Registry() *Registry {
	return d.registry
}

// From returns the default signer.
func (d *Deployer) From() crypto.Signer {
	return d.from
}

// DeployOption configures a single deployment.
type DeployOption func(*deployOptions)

type deployOptions struct {
	overwrite bool
	from      crypto.Signer
}

// Overwrite set to false makes Deploy reuse an instance already recorded
// for the artifact on this network instead of creating a new one.
func Overwrite(overwrite bool) DeployOption {
	return func(o *deployOptions) {
		o.overwrite = overwrite
	}
}

// From signs the deployment with given key instead of the default signer.
// The signer becomes the creator of the instance.
func From(s crypto.Signer) DeployOption {
	return func(o *deployOptions) {
		o.from = s
	}
}

// Deploy creates an instance of the named artifact, constructed with args.
// A nil args deploys an artifact that takes no arguments. The address of the
// new instance is returned and recorded in the registry.
func (d *Deployer) Deploy(ctx context.Context, name string, args artifact.ConstructorArgs, opts ...DeployOption) (quorum.Address, error) {
	o := deployOptions{overwrite: true, from: d.from}
	for _, fn := range opts {
		fn(&o)
	}

	if !o.overwrite {
		switch prev, err := d.registry.Load(d.network, name); {
		case err == nil:
			d.logger.Info("Reusing deployed contract", "artifact", name, "address", prev.Address)
			return prev.Address, nil
		case !errors.ErrNotFound.Is(err):
			return nil, errors.Wrap(err, "registry")
		}
	}

	raw, err := artifact.EncodeArgs(args)
	if err != nil {
		return nil, errors.Wrapf(err, "%s arguments", name)
	}
	msg := &artifact.DeployContractMsg{
		Metadata: quorum.Metadata{Schema: 1},
		Artifact: name,
		Args:     raw,
	}
	d.logger.Info("Deploying", "artifact", name)
	res, err := d.send(ctx, msg, o.from)
	if err != nil {
		return nil, errors.Wrapf(err, "deploy %s", name)
	}

	addr := quorum.Address(res.Result.Data)
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrapf(err, "deploy %s returned address", name)
	}
	dep := Deployment{
		Artifact:  name,
		Address:   addr,
		TxHash:    res.ID,
		Height:    res.Height,
		Migration: d.migration,
	}
	if err := d.registry.Save(d.network, dep); err != nil {
		return nil, errors.Wrap(err, "registry")
	}
	d.logger.Info("Deployed", "artifact", name, "address", addr, "height", res.Height)
	return addr, nil
}

// Send signs a message with the default signer, or with given signers when
// any are provided, and waits until it is committed.
func (d *Deployer) Send(ctx context.Context, msg quorum.Msg, signers ...crypto.Signer) (*client.CommitResult, error) {
	if len(signers) == 0 {
		signers = []crypto.Signer{d.from}
	}
	return d.send(ctx, msg, signers...)
}

func (d *Deployer) send(ctx context.Context, msg quorum.Msg, signers ...crypto.Signer) (*client.CommitResult, error) {
	for _, s := range signers {
		if s == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "missing signer")
		}
	}
	tx, err := quorumd.NewTx(msg)
	if err != nil {
		return nil, err
	}
	return d.client.SignAndBroadcast(ctx, tx, signers...)
}
