/*
Package multisig implements MultiSignatureWallet, a contract that holds
funds and executes transactions once enough of its owners confirmed them.

A wallet is deployed through the artifact extension with a list of owners
and the number of confirmations a transaction requires. Funds are deposited
by sending value to the wallet address with cash.SendMsg.

Any owner can submit a transaction. Submitting confirms it on behalf of the
sender. Once the transaction collects the required number of confirmations
it is executed: the value is moved from the wallet to the destination and
the optional message is delivered with the wallet condition authenticated.
A failing execution is reverted and the transaction stays pending, so that
it can be executed again later.

Wallet owners can also authorize a transaction off chain by signing it
together and listing the wallet in the transaction Multisig field, see
Decorator.
*/
package multisig
