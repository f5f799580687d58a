/*
Package cash keeps the native balance of every account.

Balances are coin.Amount values stored under the owner address. Value moves
between accounts with SendMsg, which must be authorized by the source
account. Contracts holding funds (for example multisig wallets) use the
Controller directly.
*/
package cash
