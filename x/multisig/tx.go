package multisig

import "github.com/iov-one/quorum"

// MultiSigTx is implemented by transactions that act on behalf of wallets.
// Wallets are authorized in the listed order, so a wallet owned by another
// wallet must be listed after it.
type MultiSigTx interface {
	GetMultisig() []quorum.Address
}
