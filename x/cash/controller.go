package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Controller is the functionality needed by cash.Handler and other
// extensions that move value between accounts.
type Controller interface {
	// MoveCoins moves the given amount from src to dest. If src doesn't
	// exist, or doesn't have sufficient coins, it fails.
	MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount coin.Amount) error

	// Balance returns the amount held by given address. Unknown accounts
	// hold nothing.
	Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (coin.Amount, error)
}

// CoinMinter can create new value out of thin air. Only genesis and tests
// should have access to it.
type CoinMinter interface {
	CoinMint(db quorum.KVStore, dest quorum.Address, amount coin.Amount) error
}

// BaseController is a simple implementation of Controller and CoinMinter.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}
var _ CoinMinter = BaseController{}

// NewController returns a base controller using the default bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) MoveCoins(db quorum.KVStore, src, dest quorum.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}

	var sender Wallet
	switch err := c.bucket.One(db, src, &sender); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrEmptyAccount, "%s", src)
	default:
		return errors.Wrap(err, "load sender")
	}
	left, err := sender.Balance.Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "sender")
	}
	sender.Balance = left
	if err := c.save(db, src, &sender); err != nil {
		return err
	}

	// Recipient is loaded after the sender is saved, so that sending to
	// self is a no-op.
	recipient, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := recipient.Balance.Add(amount)
	if err != nil {
		return errors.Wrap(err, "recipient")
	}
	recipient.Balance = total
	return c.save(db, dest, recipient)
}

func (c BaseController) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (coin.Amount, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return w.Balance, nil
	case errors.ErrNotFound.Is(err):
		return coin.NewAmount(0), nil
	default:
		return nil, err
	}
}

// CoinMint adds the given amount to the destination address. Fails if it
// overflows the wallet.
func (c BaseController) CoinMint(db quorum.KVStore, dest quorum.Address, amount coin.Amount) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	w, err := c.loadOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := w.Balance.Add(amount)
	if err != nil {
		return err
	}
	w.Balance = total
	return c.save(db, dest, w)
}

func (c BaseController) loadOrCreate(db quorum.ReadOnlyKVStore, addr quorum.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return NewWallet(coin.NewAmount(0)), nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

func (c BaseController) save(db quorum.KVStore, addr quorum.Address, w *Wallet) error {
	if _, err := c.bucket.Put(db, addr, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}
