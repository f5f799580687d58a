// quorum deploys the contracts of a quorum network and talks to the
// deployed instances.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/deploy"
	"github.com/iov-one/quorum/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	c := newCLI(os.Stdout)
	err := c.rootCmd().Execute()
	c.close()
	if err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// cli keeps the state shared by all commands of a single process. Opened
// networks and the registry are reused between commands.
type cli struct {
	out io.Writer

	v        *viper.Viper
	cfgFile  string
	conf     *deploy.Config
	logger   log.Logger
	registry *deploy.Registry
	networks map[string]*deploy.Network
}

func newCLI(out io.Writer) *cli {
	return &cli{
		out:      out,
		networks: make(map[string]*deploy.Network),
	}
}

func (c *cli) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quorum",
		Short: "Deploy and operate multi signature wallets",
		Long: `quorum runs the numbered migration scripts against a network and
records every deployed contract in a local registry. The remaining commands
operate the deployed SimpleStorage and MultiSignatureWallet instances.

Networks are configured in quorum.yaml, see "quorum init".`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	cmd.SetOut(c.out)

	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./quorum.yaml)")
	cmd.PersistentFlags().StringP("network", "n", deploy.DevelopmentNetwork, "network to use")
	cmd.PersistentFlags().String("log-level", "info", `log level ("debug", "info", "error" or "none")`)

	c.v = viper.New()
	c.v.SetEnvPrefix("quorum")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	_ = c.v.BindPFlag("network", cmd.PersistentFlags().Lookup("network"))
	_ = c.v.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(
		c.initCmd(),
		c.migrateCmd(),
		c.networksCmd(),
		c.deploymentsCmd(),
		c.accountsCmd(),
		c.sendCmd(),
		c.walletCmd(),
		c.storageCmd(),
		c.versionCmd(),
	)
	return cmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	conf, err := deploy.LoadConfig(c.cfgFile)
	if err != nil {
		return err
	}
	c.conf = conf

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "quorum")
	switch lvl := c.v.GetString("log-level"); lvl {
	case "none":
		c.logger = log.NewNopLogger()
	default:
		opt, err := log.AllowLevel(lvl)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		c.logger = log.NewFilter(logger, opt)
	}
	return nil
}

func (c *cli) close() {
	if c.registry != nil {
		c.registry.Close()
		c.registry = nil
	}
}

func (c *cli) networkName() string {
	return c.v.GetString("network")
}

// network returns the selected network, opening it on first use.
func (c *cli) network() (*deploy.Network, error) {
	name := c.networkName()
	if net, ok := c.networks[name]; ok {
		return net, nil
	}
	net, err := c.conf.Open(name, c.logger)
	if err != nil {
		return nil, err
	}
	c.networks[name] = net
	return net, nil
}

func (c *cli) openRegistry() (*deploy.Registry, error) {
	if c.registry == nil {
		reg, err := deploy.OpenRegistry(c.conf.Registry)
		if err != nil {
			return nil, err
		}
		c.registry = reg
	}
	return c.registry, nil
}

// deployer returns a deployer of the selected network. A non negative
// account overrides the configured signer.
func (c *cli) deployer(account int) (*deploy.Deployer, *deploy.Network, error) {
	net, err := c.network()
	if err != nil {
		return nil, nil, err
	}
	reg, err := c.openRegistry()
	if err != nil {
		return nil, nil, err
	}
	d, err := net.Deployer(reg, c.logger)
	if err != nil {
		return nil, nil, err
	}
	if account >= 0 {
		key, err := net.Accounts.Key(account)
		if err != nil {
			return nil, nil, err
		}
		d = deploy.NewDeployer(d.Client(), reg, net.Name, key, c.logger)
	}
	return d, net, nil
}

// resolve parses an address argument. An empty value resolves to the last
// deployment of given artifact on the selected network.
func (c *cli) resolve(arg, artifact string) (quorum.Address, error) {
	if arg != "" {
		return quorum.ParseAddress(arg)
	}
	reg, err := c.openRegistry()
	if err != nil {
		return nil, err
	}
	dep, err := reg.Load(c.networkName(), artifact)
	if err != nil {
		return nil, errors.Wrap(err, "no address given")
	}
	return dep.Address, nil
}

func (c *cli) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.printf("%s\n", quorum.Version())
			return nil
		},
	}
}
