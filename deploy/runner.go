package deploy

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/migration"
	"github.com/tendermint/tendermint/libs/log"
)

// RunOptions narrow down the scripts a run executes.
type RunOptions struct {
	// From is the number of the first script to run, regardless of the
	// recorded progress. Zero continues after the last completed one.
	From int
	// To is the number of the last script to run. Zero runs all.
	To int
	// Reset forgets all deployments of the network and runs all scripts
	// again, starting with a new Migrations instance.
	Reset bool
}

// Runner executes migration scripts against a network. Progress is
// recorded by a Migrations instance owned by the deployer's signer.
type Runner struct {
	deployer *Deployer
	scripts  *Scripts
	accounts *Accounts
	logger   log.Logger
}

// NewRunner returns a runner for the network of given deployer.
func NewRunner(d *Deployer, scripts *Scripts, accounts *Accounts) *Runner {
	return &Runner{
		deployer: d,
		scripts:  scripts,
		accounts: accounts,
		logger:   d.logger.With("module", "migrate"),
	}
}

// Run executes, in ascending order, every selected script that was not
// completed yet. After each script the Migrations instance is updated. The
// run stops at the first failing script, which is not marked as completed.
// Scripts that completed are returned.
func (r *Runner) Run(ctx context.Context, opts RunOptions) ([]Script, error) {
	if opts.From < 0 || opts.To < 0 || (opts.To > 0 && opts.From > opts.To) {
		return nil, errors.Wrapf(errors.ErrInput, "invalid script range %d..%d", opts.From, opts.To)
	}
	d := r.deployer
	if opts.Reset {
		r.logger.Info("Resetting deployments")
		if err := d.registry.Reset(d.network); err != nil {
			return nil, errors.Wrap(err, "reset registry")
		}
	}

	tracker, last, err := r.progress(ctx)
	if err != nil {
		return nil, err
	}
	start := int(last) + 1
	if opts.From > 0 {
		start = opts.From
	}

	defer func() { d.migration = 0 }()
	var done []Script
	for _, s := range r.scripts.List() {
		if s.Number < start || (opts.To > 0 && s.Number > opts.To) {
			continue
		}
		r.logger.Info("Running migration", "number", s.Number, "name", s.Name)
		d.migration = s.Number
		if err := s.Run(ctx, d, d.network, r.accounts); err != nil {
			return done, errors.Wrapf(err, "migration %d %s", s.Number, s.Name)
		}

		// A script may deploy its own Migrations instance.
		next, nextLast, err := r.progress(ctx)
		if err != nil {
			return done, err
		}
		if !next.Equals(tracker) {
			tracker, last = next, nextLast
		}
		if uint64(s.Number) > last {
			if err := r.setCompleted(ctx, tracker, s.Number); err != nil {
				return done, errors.Wrapf(err, "migration %d %s completed", s.Number, s.Name)
			}
			last = uint64(s.Number)
		}
		done = append(done, s)
	}
	if len(done) == 0 {
		r.logger.Info("Network is up to date", "last_completed", last)
	}
	return done, nil
}

// progress returns the Migrations instance of the network with its last
// completed migration. An instance is deployed when the network has none.
func (r *Runner) progress(ctx context.Context) (quorum.Address, uint64, error) {
	d := r.deployer
	switch dep, err := d.registry.Load(d.network, migration.ArtifactName); {
	case err == nil:
		last, err := d.client.LastCompletedMigration(ctx, dep.Address)
		if err == nil {
			return dep.Address, last, nil
		}
		if !errors.ErrNotFound.Is(err) {
			return nil, 0, errors.Wrap(err, "last completed migration")
		}
		// The chain does not know the recorded instance, for example
		// because an in memory network was restarted.
		r.logger.Info("Registry does not match the chain, resetting", "migrations", dep.Address)
		if err := d.registry.Reset(d.network); err != nil {
			return nil, 0, errors.Wrap(err, "reset registry")
		}
	case !errors.ErrNotFound.Is(err):
		return nil, 0, errors.Wrap(err, "registry")
	}

	addr, err := d.Deploy(ctx, migration.ArtifactName, nil)
	if err != nil {
		return nil, 0, err
	}
	return addr, 0, nil
}

func (r *Runner) setCompleted(ctx context.Context, tracker quorum.Address, number int) error {
	msg := &migration.SetCompletedMsg{
		Metadata:  quorum.Metadata{Schema: 1},
		Contract:  tracker,
		Completed: uint64(number),
	}
	if _, err := r.deployer.Send(ctx, msg); err != nil {
		return err
	}
	r.logger.Info("Migration completed", "number", number)
	return nil
}
