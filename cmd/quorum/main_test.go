package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/multisig"
)

// run executes a single command line. State kept by c, like opened
// networks, survives between calls.
func run(t *testing.T, c *cli, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.out = &out
	cmd := c.rootCmd()
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs(append(args, "--log-level", "none"))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, c *cli, args ...string) string {
	t.Helper()
	out, err := run(t, c, args...)
	if err != nil {
		t.Fatalf("quorum %s: %+v", strings.Join(args, " "), err)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Fatalf("output does not contain %q:\n%s", w, out)
		}
	}
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "quorum.yaml")
	content := `
registry: ` + filepath.Join(dir, "registry.db") + `
networks:
  development:
    remote: embedded
    chain_id: quorum-cli
    seed: cli test
    accounts: 6
`
	assert.Nil(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestMigrateAndOperateWallet(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-cli")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	conf := writeConfig(t, dir)

	c := newCLI(ioutil.Discard)
	defer c.close()

	out := mustRun(t, c, "migrate", "--config", conf)
	assertContains(t, out, "1_initial_migration done", "2_deploy_contracts done")

	out = mustRun(t, c, "migrate", "--config", conf)
	assertContains(t, out, "Network development is up to date")

	out = mustRun(t, c, "deployments", "--verify", "--config", conf)
	assertContains(t, out, "Migrations", "SimpleStorage", "MultiSignatureWallet")

	out = mustRun(t, c, "wallet", "show", "--config", conf)
	assertContains(t, out, "Required:     3 of 5", "Transactions: 0")

	out = mustRun(t, c, "wallet", "submit", "--set-value", "42", "--account", "0", "--config", conf)
	assertContains(t, out, "Transaction 0 submitted", multisig.EventSubmission)

	out = mustRun(t, c, "wallet", "confirm", "0", "--account", "1", "--config", conf)
	assertContains(t, out, multisig.EventConfirmation)
	out = mustRun(t, c, "storage", "get", "--config", conf)
	assert.Equal(t, "0\n", out)

	// the third confirmation reaches the requirement
	out = mustRun(t, c, "wallet", "confirm", "0", "--account", "2", "--config", conf)
	assertContains(t, out, multisig.EventExecution)
	out = mustRun(t, c, "storage", "get", "--config", conf)
	assert.Equal(t, "42\n", out)

	out = mustRun(t, c, "wallet", "tx", "0", "--config", conf)
	assertContains(t, out, "Executed:    true", "Message:     storage/set")

	// account 5 is funded but does not own the wallet
	_, err = run(t, c, "wallet", "submit", "--set-value", "1", "--account", "5", "--config", conf)
	if !multisig.ErrNotOwner.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	out = mustRun(t, c, "accounts", "--config", conf)
	assertContains(t, out, "0*")
}

func TestCommandErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-cli")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	conf := writeConfig(t, dir)

	cases := map[string]struct {
		args    []string
		wantErr *errors.Error
	}{
		"missing config": {
			args:    []string{"networks", "--config", filepath.Join(dir, "missing.yaml")},
			wantErr: errors.ErrNotFound,
		},
		"unknown network": {
			args:    []string{"accounts", "--network", "mainnet", "--config", conf},
			wantErr: errors.ErrNotFound,
		},
		"wallet before migrate": {
			args:    []string{"wallet", "show", "--config", conf},
			wantErr: errors.ErrNotFound,
		},
		"invalid transaction id": {
			args:    []string{"wallet", "tx", "first", "--wallet", "0123456789012345678901234567890123456789", "--config", conf},
			wantErr: errors.ErrInput,
		},
		"account out of range": {
			args:    []string{"storage", "set", "7", "--contract", "0123456789012345678901234567890123456789", "--account", "6", "--config", conf},
			wantErr: errors.ErrNotFound,
		},
		"invalid log level": {
			args:    []string{"networks", "--log-level", "loud", "--config", conf},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := newCLI(ioutil.Discard)
			defer c.close()
			var out bytes.Buffer
			c.out = &out
			cmd := c.rootCmd()
			cmd.SetErr(ioutil.Discard)
			cmd.SetArgs(tc.args)
			if err := cmd.Execute(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestInitAndNetworks(t *testing.T) {
	dir, err := ioutil.TempDir("", "quorum-cli")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "quorum.yaml")

	c := newCLI(ioutil.Discard)
	defer c.close()

	out := mustRun(t, c, "init", path)
	assertContains(t, out, "Configuration written to")

	_, err = run(t, c, "init", path)
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}

	out = mustRun(t, c, "networks", "--config", path)
	assertContains(t, out, "development", "embedded", "quorum-dev")
}
