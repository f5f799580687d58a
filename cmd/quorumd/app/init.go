package app

import (
	"encoding/json"
	"path/filepath"
	"strconv"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// DevPhrase derives the accounts funded by a development genesis.
	DevPhrase = "quorum development network"
	// DevAccounts is the number of accounts funded by default.
	DevAccounts = 10
	// DevBalance is the initial balance of every development account.
	DevBalance = 1000000000
)

type genesis struct {
	Cash     []cash.GenesisAccount    `json:"cash"`
	Conf     map[string]interface{}   `json:"conf"`
	Multisig []multisig.GenesisWallet `json:"multisig"`
}

// GenInitOptions will produce the options of a development chain: a number
// of accounts derived from a phrase, each holding DevBalance coins. The
// first account owns the multisig configuration.
//
// Optional arguments are the phrase and the number of accounts.
func GenInitOptions(args []string) (json.RawMessage, error) {
	phrase := DevPhrase
	if len(args) > 0 {
		phrase = args[0]
	}
	n := DevAccounts
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "account count: %s", err)
		}
		n = v
	}
	keys, err := crypto.DeriveKeys(phrase, n)
	if err != nil {
		return nil, err
	}
	addrs := crypto.Addresses(keys)
	return GenesisOptions(addrs, coin.NewAmount(DevBalance))
}

// GenesisOptions returns the application state funding all given accounts
// with the same balance.
func GenesisOptions(accounts []quorum.Address, balance coin.Amount) (json.RawMessage, error) {
	if len(accounts) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "accounts")
	}
	gen := genesis{
		Conf: map[string]interface{}{
			"multisig": multisig.Configuration{
				Metadata:      quorum.Metadata{Schema: 1},
				Owner:         accounts[0],
				MaxOwnerCount: multisig.DefaultMaxOwnerCount,
			},
		},
		Multisig: []multisig.GenesisWallet{},
	}
	for _, a := range accounts {
		gen.Cash = append(gen.Cash, cash.GenesisAccount{Address: a, Balance: balance})
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "quorum.db")
	}

	application, err := Application("quorumd", Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	// set the logger and return
	application.WithLogger(logger)
	return application, nil
}

// InlineApp returns an in-memory application, used by tests and the local
// deployment network.
func InlineApp(logger log.Logger, debug bool) abci.Application {
	a, err := GenerateApp("", logger, debug)
	if err != nil {
		// memory backed store cannot fail
		panic(err)
	}
	return a
}
