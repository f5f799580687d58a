/*
Package migration implements the Migrations contract used by the deployment
tool to remember which deployment scripts were already run on a chain.

Every Migrations instance is owned by the account that deployed it. Only the
owner can move the last completed migration number forward.
*/
package migration
