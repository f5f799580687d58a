package deploy

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/client"
	quorumd "github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/coin"
	"github.com/iov-one/quorum/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigName is the name of the configuration file, without extension.
	ConfigName = "quorum"

	// EmbeddedRemote runs the network in process instead of connecting to
	// a node.
	EmbeddedRemote = "embedded"

	// DevelopmentNetwork is the network used when none is selected.
	DevelopmentNetwork = "development"

	defaultRegistry = "quorum-registry.db"
	defaultChainID  = "quorum-dev"
)

// Config is the content of the quorum.yaml file.
type Config struct {
	Registry string                   `mapstructure:"registry" yaml:"registry"`
	Networks map[string]NetworkConfig `mapstructure:"networks" yaml:"networks"`
}

// NetworkConfig describes how to reach a network and which accounts to use
// on it.
type NetworkConfig struct {
	// Remote is the tendermint RPC address, or "embedded".
	Remote  string `mapstructure:"remote" yaml:"remote"`
	ChainID string `mapstructure:"chain_id" yaml:"chain_id"`
	// Seed derives Accounts keys. Ignored when Keys are given.
	Seed     string   `mapstructure:"seed" yaml:"seed,omitempty"`
	Accounts int      `mapstructure:"accounts" yaml:"accounts,omitempty"`
	Keys     []string `mapstructure:"keys" yaml:"keys,omitempty"`
	// From is the index of the account deployments are signed with.
	From int `mapstructure:"from" yaml:"from"`
	// EmbeddedHome keeps the state of an embedded network between runs.
	// An empty value keeps it in memory.
	EmbeddedHome string `mapstructure:"embedded_home" yaml:"embedded_home,omitempty"`
}

// DefaultConfig returns the configuration written by WriteDefaultConfig.
func DefaultConfig() Config {
	return Config{
		Registry: defaultRegistry,
		Networks: map[string]NetworkConfig{
			DevelopmentNetwork: {
				Remote:   EmbeddedRemote,
				ChainID:  defaultChainID,
				Seed:     quorumd.DevPhrase,
				Accounts: quorumd.DevAccounts,
			},
		},
	}
}

// LoadConfig reads the configuration from path. When path is empty,
// quorum.yaml is looked up in the working directory and its absence yields
// the default configuration. Values can be overridden by QUORUM_ prefixed
// environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("registry", defaultRegistry)
	v.SetConfigType("yaml")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(errors.ErrNotFound, "config %s", path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrapf(errors.ErrInput, "cannot read config: %s", err)
		}
	}
	v.SetEnvPrefix("quorum")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse config: %s", err)
	}
	if len(c.Networks) == 0 {
		c.Networks = DefaultConfig().Networks
	}
	return &c, nil
}

// WriteDefaultConfig creates a configuration file with the default content.
// An existing file is never overwritten.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "%s already exists", path)
	}
	raw, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(errors.ErrState, "cannot create config directory: %s", err)
		}
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrapf(errors.ErrState, "cannot write config: %s", err)
	}
	return nil
}

// NetworkNames returns the names of all configured networks.
func (c *Config) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for n := range c.Networks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Network returns the configuration of the named network.
func (c *Config) Network(name string) (*NetworkConfig, error) {
	n, ok := c.Networks[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "network %q, configured: %s", name, strings.Join(c.NetworkNames(), ", "))
	}
	return &n, nil
}

// Validate checks that the network can be opened.
func (n *NetworkConfig) Validate() error {
	var errs error
	if n.Remote == "" {
		errs = errors.AppendField(errs, "Remote", errors.ErrEmpty)
	}
	switch {
	case n.Remote == EmbeddedRemote && n.ChainID == "":
		errs = errors.AppendField(errs, "ChainID", errors.ErrEmpty)
	case n.ChainID != "" && !quorum.IsValidChainID(n.ChainID):
		errs = errors.AppendField(errs, "ChainID", errors.Wrapf(errors.ErrInput, "invalid chain id %q", n.ChainID))
	}
	if len(n.Keys) == 0 && n.Seed == "" {
		errs = errors.AppendField(errs, "Seed", errors.Wrap(errors.ErrEmpty, "seed or keys required"))
	}
	if n.From < 0 {
		errs = errors.AppendField(errs, "From", errors.ErrInput)
	}
	return errs
}

// LoadAccounts returns the accounts of the network.
func (n *NetworkConfig) LoadAccounts() (*Accounts, error) {
	if len(n.Keys) > 0 {
		return ParseAccounts(n.Keys)
	}
	count := n.Accounts
	if count == 0 {
		count = quorumd.DevAccounts
	}
	return DeriveAccounts(n.Seed, count)
}

// Network is an opened network.
type Network struct {
	Name     string
	Conn     client.Connection
	Accounts *Accounts
	From     int
}

// Open connects to the named network. An embedded network is started in
// process, with a genesis that funds all of its accounts.
func (c *Config) Open(name string, logger log.Logger) (*Network, error) {
	conf, err := c.Network(name)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "network %s", name)
	}
	accounts, err := conf.LoadAccounts()
	if err != nil {
		return nil, errors.Wrapf(err, "network %s accounts", name)
	}
	if _, err := accounts.Key(conf.From); err != nil {
		return nil, errors.Wrapf(err, "network %s from", name)
	}

	var conn client.Connection
	if conf.Remote == EmbeddedRemote {
		conn, err = openEmbedded(conf, accounts, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "network %s", name)
		}
	} else {
		conn = client.NewRemote(conf.Remote)
	}
	return &Network{Name: name, Conn: conn, Accounts: accounts, From: conf.From}, nil
}

func openEmbedded(conf *NetworkConfig, accounts *Accounts, logger log.Logger) (*client.Local, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	application, err := quorumd.GenerateApp(conf.EmbeddedHome, logger.With("module", "embedded"), false)
	if err != nil {
		return nil, err
	}
	state, err := quorumd.GenesisOptions(accounts.Addresses(), coin.NewAmount(quorumd.DevBalance))
	if err != nil {
		return nil, err
	}
	return client.NewLocal(application, conf.ChainID, state)
}

// Deployer returns a deployer for this network, signing with the configured
// account.
func (n *Network) Deployer(registry *Registry, logger log.Logger) (*Deployer, error) {
	from, err := n.Accounts.Key(n.From)
	if err != nil {
		return nil, err
	}
	return NewDeployer(client.NewClient(n.Conn), registry, n.Name, from, logger), nil
}
