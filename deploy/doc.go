/*
Package deploy runs numbered migration scripts against a quorum network.

A script receives a Deployer, the name of the network and the accounts
available on it. Scripts are registered with a number and run in ascending
order. Progress is kept on chain by a Migrations contract instance, so
running the same scripts twice only executes the ones that were added since
the last run.

Every deployed contract is recorded in a local Registry, grouped by network,
so that later runs and the command line tools can find the addresses.
*/
package deploy
