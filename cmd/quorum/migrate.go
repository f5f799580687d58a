package main

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/iov-one/quorum/deploy"
	_ "github.com/iov-one/quorum/deploy/scripts"
	"github.com/iov-one/quorum/errors"
	"github.com/spf13/cobra"
)

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Long: `Write the default configuration to path, or to quorum.yaml in the working
directory. The default configuration declares a single embedded development
network. An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := deploy.ConfigName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := deploy.WriteDefaultConfig(path); err != nil {
				return err
			}
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			c.printf("Configuration written to %s\n", abs)
			return nil
		},
	}
}

func (c *cli) migrateCmd() *cobra.Command {
	var opts deploy.RunOptions
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run the migration scripts",
		Long: `Run all migration scripts that were not completed yet on the selected
network. Progress is tracked on chain by the Migrations contract, so running
migrate again only runs scripts added since.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, net, err := c.deployer(-1)
			if err != nil {
				return err
			}
			runner := deploy.NewRunner(d, deploy.DefaultScripts, net.Accounts)
			done, err := runner.Run(cmd.Context(), opts)
			for _, s := range done {
				c.printf("%d_%s done\n", s.Number, s.Name)
			}
			if err != nil {
				return err
			}
			if len(done) == 0 {
				c.printf("Network %s is up to date\n", net.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.From, "from", 0, "run scripts starting with this number, even if completed")
	cmd.Flags().IntVar(&opts.To, "to", 0, "do not run scripts above this number")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "forget all deployments and run every script")
	return cmd
}

func (c *cli) networksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREMOTE\tCHAIN ID")
			for _, name := range c.conf.NetworkNames() {
				n := c.conf.Networks[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, n.Remote, n.ChainID)
			}
			return w.Flush()
		},
	}
}

func (c *cli) deploymentsCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "deployments",
		Short: "List contracts deployed on the selected network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.openRegistry()
			if err != nil {
				return err
			}
			deps, err := reg.List(c.networkName())
			if err != nil {
				return err
			}
			if verify && len(deps) > 0 {
				if err := c.verify(cmd.Context(), deps); err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ARTIFACT\tADDRESS\tHEIGHT\tMIGRATION\tTX")
			for _, d := range deps {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", d.Artifact, d.Address, d.Height, d.Migration, d.TxHash)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "check that every recorded contract exists on chain")
	return cmd
}

// verify fails if any of the deployments is not known to the network.
func (c *cli) verify(ctx context.Context, deps []deploy.Deployment) error {
	d, _, err := c.deployer(-1)
	if err != nil {
		return err
	}
	for _, dep := range deps {
		inst, err := d.Client().Instance(ctx, dep.Address)
		if err != nil {
			return errors.Wrapf(err, "%s at %s", dep.Artifact, dep.Address)
		}
		if inst.Artifact != dep.Artifact {
			return errors.Wrapf(errors.ErrState, "%s at %s is an instance of %s", dep.Artifact, dep.Address, inst.Artifact)
		}
	}
	return nil
}
