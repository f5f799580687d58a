package deploy

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "quorum.yaml")

	require.NoError(t, WriteDefaultConfig(path))
	err = WriteDefaultConfig(path)
	assert.True(t, errors.ErrDuplicate.Is(err), "unexpected error: %+v", err)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *conf)
	assert.Equal(t, []string{DevelopmentNetwork}, conf.NetworkNames())
}

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "quorum.yaml")
	content := `
registry: deployments.db
networks:
  local:
    remote: http://localhost:26657
    chain_id: local-chain
    keys:
      - "0101010101010101010101010101010101010101010101010101010101010101"
  persistent:
    remote: embedded
    chain_id: quorum-persist
    seed: my seed
    accounts: 6
    from: 2
    embedded_home: state
`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "deployments.db", conf.Registry)
	assert.Equal(t, []string{"local", "persistent"}, conf.NetworkNames())

	local, err := conf.Network("local")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:26657", local.Remote)
	require.NoError(t, local.Validate())
	accounts, err := local.LoadAccounts()
	require.NoError(t, err)
	assert.Equal(t, 1, accounts.Len())

	persistent, err := conf.Network("persistent")
	require.NoError(t, err)
	assert.Equal(t, NetworkConfig{
		Remote:       EmbeddedRemote,
		ChainID:      "quorum-persist",
		Seed:         "my seed",
		Accounts:     6,
		From:         2,
		EmbeddedHome: "state",
	}, *persistent)

	_, err = conf.Network("development")
	assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)

	// environment takes precedence over the file
	os.Setenv("QUORUM_REGISTRY", "from-env.db")
	defer os.Unsetenv("QUORUM_REGISTRY")
	conf, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", conf.Registry)
}

func TestLoadConfigErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, ioutil.WriteFile(broken, []byte("networks: [\n"), 0600))
	_, err = LoadConfig(broken)
	assert.True(t, errors.ErrInput.Is(err), "unexpected error: %+v", err)
}

func TestOpenNetwork(t *testing.T) {
	conf := DefaultConfig()
	conf.Networks["no-seed"] = NetworkConfig{Remote: EmbeddedRemote, ChainID: "quorum-test"}
	conf.Networks["bad-from"] = NetworkConfig{Remote: EmbeddedRemote, ChainID: "quorum-test", Seed: "x", Accounts: 2, From: 2}
	conf.Networks["bad-chain"] = NetworkConfig{Remote: EmbeddedRemote, ChainID: "x", Seed: "x"}

	cases := map[string]*errors.Error{
		DevelopmentNetwork: nil,
		"no-seed":          errors.ErrEmpty,
		"bad-from":         errors.ErrNotFound,
		"bad-chain":        errors.ErrInput,
		"unknown":          errors.ErrNotFound,
	}
	for name, wantErr := range cases {
		t.Run(name, func(t *testing.T) {
			net, err := conf.Open(name, nil)
			if !wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, DevelopmentNetwork, net.Name)
				assert.Equal(t, 10, net.Accounts.Len())
			}
		})
	}
}
