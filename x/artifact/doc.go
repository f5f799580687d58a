/*
Package artifact deploys contract instances.

An Artifact is a contract implementation known to the application under a
unique name. Deploying an artifact creates a new Instance: a fresh address,
derived from a chain wide sequence, that the artifact initializes with the
constructor arguments carried by DeployContractMsg.

Every instance is controlled by its own condition. Contracts that act on
behalf of an instance (for example a wallet executing a transaction) use
Instance.Condition to authenticate.
*/
package artifact
