package main

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/client"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/storage"
	"github.com/spf13/cobra"
)

func (c *cli) accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the accounts of the selected network with their balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, net, err := c.deployer(-1)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tADDRESS\tBALANCE")
			for i, addr := range net.Accounts.Addresses() {
				balance, err := d.Client().Balance(cmd.Context(), addr)
				if err != nil {
					return errors.Wrapf(err, "balance of %s", addr)
				}
				mark := ""
				if i == net.From {
					mark = "*"
				}
				fmt.Fprintf(w, "%d%s\t%s\t%s\n", i, mark, addr, balance)
			}
			return w.Flush()
		},
	}
}

func (c *cli) sendCmd() *cobra.Command {
	var (
		account int
		memo    string
	)
	cmd := &cobra.Command{
		Use:   "send <recipient> <amount>",
		Short: "Transfer coins to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := quorum.ParseAddress(args[0])
			if err != nil {
				return errors.Wrap(err, "recipient")
			}
			amount, err := coin.ParseAmount(args[1])
			if err != nil {
				return errors.Wrap(err, "amount")
			}
			d, _, err := c.deployer(account)
			if err != nil {
				return err
			}
			msg := &cash.SendMsg{
				Metadata:    quorum.Metadata{Schema: 1},
				Source:      d.From().PublicKey().Address(),
				Destination: dest,
				Amount:      amount,
				Memo:        memo,
			}
			res, err := d.Send(cmd.Context(), msg)
			if err != nil {
				return err
			}
			c.printResult(res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&account, "account", "a", -1, "index of the sending account (default is the network signer)")
	cmd.Flags().StringVar(&memo, "memo", "", "optional transfer memo")
	return cmd
}

func (c *cli) walletCmd() *cobra.Command {
	var (
		walletArg string
		account   int
	)
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Operate a MultiSignatureWallet",
		Long: `Operate a MultiSignatureWallet instance. Unless --wallet is given, the wallet
deployed by the last migration on the selected network is used.

Every owner can submit a transaction, which counts as its confirmation.
Once the number of confirmations reaches the wallet requirement the
transaction is executed.`,
	}
	cmd.PersistentFlags().StringVarP(&walletArg, "wallet", "w", "", "wallet address")
	cmd.PersistentFlags().IntVarP(&account, "account", "a", -1, "index of the signing account (default is the network signer)")

	target := func() (quorum.Address, error) {
		return c.resolve(walletArg, multisig.ArtifactName)
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the owners and the requirement of the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := target()
			if err != nil {
				return err
			}
			d, _, err := c.deployer(-1)
			if err != nil {
				return err
			}
			w, err := d.Client().Wallet(cmd.Context(), addr)
			if err != nil {
				return err
			}
			balance, err := d.Client().Balance(cmd.Context(), addr)
			if err != nil {
				return err
			}
			c.printf("Address:      %s\n", addr)
			c.printf("Required:     %d of %d\n", w.Required, len(w.Owners))
			c.printf("Transactions: %d\n", w.TransactionCount)
			c.printf("Balance:      %s\n", balance)
			c.printf("Owners:\n")
			for _, o := range w.Owners {
				c.printf("  %s\n", o)
			}
			return nil
		},
	}

	tx := &cobra.Command{
		Use:   "tx <id>",
		Short: "Print a wallet transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := target()
			if err != nil {
				return err
			}
			id, err := parseTxID(args[0])
			if err != nil {
				return err
			}
			d, _, err := c.deployer(-1)
			if err != nil {
				return err
			}
			t, err := d.Client().Transaction(cmd.Context(), addr, id)
			if err != nil {
				return err
			}
			c.printf("ID:          %d\n", t.ID)
			c.printf("Destination: %s\n", t.Destination)
			c.printf("Value:       %s\n", t.Value)
			if len(t.Data) != 0 {
				msg, err := codec.UnmarshalMsg(t.Data)
				if err != nil {
					return errors.Wrap(err, "transaction data")
				}
				c.printf("Message:     %s\n", msg.Path())
			}
			c.printf("Executed:    %t\n", t.Executed)
			c.printf("Confirmations:\n")
			for _, o := range t.Confirmations {
				c.printf("  %s\n", o)
			}
			return nil
		},
	}

	var (
		value    coin.Amount
		setValue coin.Amount
	)
	submit := &cobra.Command{
		Use:   "submit [destination]",
		Short: "Propose a transaction and confirm it",
		Long: `Propose a transaction that transfers --value coins from the wallet to the
destination. With --set-value the transaction also stores the value in the
SimpleStorage contract at the destination. The destination defaults to the
last deployed SimpleStorage.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := target()
			if err != nil {
				return err
			}
			var destArg string
			if len(args) == 1 {
				destArg = args[0]
			}
			dest, err := c.resolve(destArg, storage.ArtifactName)
			if err != nil {
				return errors.Wrap(err, "destination")
			}
			msg := &multisig.SubmitTransactionMsg{
				Metadata:    quorum.Metadata{Schema: 1},
				Wallet:      addr,
				Destination: dest,
				Value:       value,
			}
			if cmd.Flags().Changed("set-value") {
				msg.Data, err = codec.MarshalMsg(&storage.SetMsg{
					Metadata: quorum.Metadata{Schema: 1},
					Contract: dest,
					Value:    setValue,
				})
				if err != nil {
					return err
				}
			}
			res, err := c.walletSend(cmd.Context(), account, msg)
			if err != nil {
				return err
			}
			id, err := orm.DecodeSequence(res.Result.Data)
			if err != nil {
				return errors.Wrap(err, "transaction id")
			}
			c.printf("Transaction %d submitted\n", id)
			c.printResult(res)
			return nil
		},
	}
	submit.Flags().Var(&value, "value", "coins transferred to the destination")
	submit.Flags().Var(&setValue, "set-value", "value stored in the destination SimpleStorage")

	byID := func(use, short string, build func(wallet quorum.Address, id uint64) quorum.Msg) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				addr, err := target()
				if err != nil {
					return err
				}
				id, err := parseTxID(args[0])
				if err != nil {
					return err
				}
				res, err := c.walletSend(cmd.Context(), account, build(addr, id))
				if err != nil {
					return err
				}
				c.printResult(res)
				return nil
			},
		}
	}
	confirm := byID("confirm", "Confirm a transaction", func(w quorum.Address, id uint64) quorum.Msg {
		return &multisig.ConfirmTransactionMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: w, TransactionID: id}
	})
	revoke := byID("revoke", "Revoke a confirmation", func(w quorum.Address, id uint64) quorum.Msg {
		return &multisig.RevokeConfirmationMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: w, TransactionID: id}
	})
	execute := byID("execute", "Retry the execution of a confirmed transaction", func(w quorum.Address, id uint64) quorum.Msg {
		return &multisig.ExecuteTransactionMsg{Metadata: quorum.Metadata{Schema: 1}, Wallet: w, TransactionID: id}
	})

	cmd.AddCommand(show, tx, submit, confirm, revoke, execute)
	return cmd
}

func (c *cli) walletSend(ctx context.Context, account int, msg quorum.Msg) (*client.CommitResult, error) {
	d, _, err := c.deployer(account)
	if err != nil {
		return nil, err
	}
	return d.Send(ctx, msg)
}

func (c *cli) storageCmd() *cobra.Command {
	var contractArg string
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Read and write a SimpleStorage contract",
	}
	cmd.PersistentFlags().StringVarP(&contractArg, "contract", "c", "", "contract address (default is the last deployed SimpleStorage)")

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the stored value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.resolve(contractArg, storage.ArtifactName)
			if err != nil {
				return err
			}
			d, _, err := c.deployer(-1)
			if err != nil {
				return err
			}
			v, err := d.Client().StoredValue(cmd.Context(), addr)
			if err != nil {
				return err
			}
			c.printf("%s\n", v)
			return nil
		},
	}

	var account int
	set := &cobra.Command{
		Use:   "set <value>",
		Short: "Store a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.resolve(contractArg, storage.ArtifactName)
			if err != nil {
				return err
			}
			v, err := coin.ParseAmount(args[0])
			if err != nil {
				return err
			}
			d, _, err := c.deployer(account)
			if err != nil {
				return err
			}
			res, err := d.Send(cmd.Context(), &storage.SetMsg{
				Metadata: quorum.Metadata{Schema: 1},
				Contract: addr,
				Value:    v,
			})
			if err != nil {
				return err
			}
			c.printResult(res)
			return nil
		},
	}
	set.Flags().IntVarP(&account, "account", "a", -1, "index of the signing account (default is the network signer)")

	cmd.AddCommand(get, set)
	return cmd
}

func parseTxID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "invalid transaction id %q", raw)
	}
	return id, nil
}

// printResult prints the height and the events of a committed transaction.
func (c *cli) printResult(res *client.CommitResult) {
	c.printf("Committed %s at height %d\n", res.ID, res.Height)
	if res.Result == nil {
		return
	}
	for _, t := range res.Result.Tags {
		c.printf("  %s %s\n", t.Key, t.Value)
	}
}
