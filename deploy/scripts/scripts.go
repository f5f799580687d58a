/*
Package scripts holds the migration scripts of the quorum contracts. They
are registered with deploy.DefaultScripts on import.
*/
package scripts

import (
	"context"

	"github.com/iov-one/quorum/deploy"
	"github.com/iov-one/quorum/migration"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/storage"
)

// Threshold is the number of owner confirmations a transaction of the
// deployed wallet requires.
const Threshold = 3

// OwnerCount is the number of accounts that own the deployed wallet.
const OwnerCount = 5

func init() {
	RegisterAll(deploy.DefaultScripts)
}

// RegisterAll adds all scripts of this package to given set.
func RegisterAll(s *deploy.Scripts) {
	s.MustRegister(1, "initial_migration", InitialMigration)
	s.MustRegister(2, "deploy_contracts", DeployContracts)
}

// InitialMigration deploys the Migrations contract that records the
// progress of later scripts. An instance already created for the network is
// kept.
func InitialMigration(ctx context.Context, deployer *deploy.Deployer, network string, accounts *deploy.Accounts) error {
	_, err := deployer.Deploy(ctx, migration.ArtifactName, nil, deploy.Overwrite(false))
	return err
}

// DeployContracts deploys SimpleStorage and then a MultiSignatureWallet
// owned by the first five accounts, requiring three confirmations.
func DeployContracts(ctx context.Context, deployer *deploy.Deployer, network string, accounts *deploy.Accounts) error {
	owners, err := accounts.Range(0, OwnerCount)
	if err != nil {
		return err
	}

	if _, err := deployer.Deploy(ctx, storage.ArtifactName, nil); err != nil {
		return err
	}
	args := &multisig.ConstructorArgs{
		Owners:   owners,
		Required: Threshold,
	}
	if _, err := deployer.Deploy(ctx, multisig.ArtifactName, args); err != nil {
		return err
	}
	return nil
}
