package multisig

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/artifact"
)

func TestGenesis(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis     string
		wantErr     *errors.Error
		wantWallets int
		wantMax     uint32
	}{
		"empty": {
			genesis: `{}`,
			wantMax: DefaultMaxOwnerCount,
		},
		"wallets and configuration": {
			genesis: fmt.Sprintf(`{
				"conf": {"multisig": {"metadata": {"schema": 1}, "owner": "%s", "max_owner_count": 5}},
				"multisig": [
					{"owners": ["%s", "%s"], "required": 2},
					{"owners": ["%s"], "required": 1}
				]
			}`, a, a, b, b),
			wantWallets: 2,
			wantMax:     5,
		},
		"requirement too high": {
			genesis: fmt.Sprintf(`{"multisig": [{"owners": ["%s"], "required": 2}]}`, a),
			wantErr: ErrInvalidRequirement,
		},
		"no owners": {
			genesis: `{"multisig": [{"required": 1}]}`,
			wantErr: ErrInvalidRequirement,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts quorum.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var ini Initializer
			err := ini.FromGenesis(opts, quorum.GenesisParams{ChainID: "test-chain"}, db)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}

			instances, err := artifact.InstancesOf(db, ArtifactName)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantWallets, len(instances))

			conf, err := loadConf(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantMax, conf.MaxOwnerCount)
		})
	}
}
