package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantA   string
		wantB   string
	}{
		"no cash section": {
			genesis: `{}`,
			wantA:   "0",
			wantB:   "0",
		},
		"funded accounts": {
			genesis: fmt.Sprintf(`{"cash": [
				{"address": "%s", "balance": "1000"},
				{"address": "%s", "balance": 5},
				{"address": "%s", "balance": "1"}
			]}`, a, b, a),
			wantA: "1001",
			wantB: "5",
		},
		"missing address": {
			genesis: `{"cash": [{"balance": "1"}]}`,
			wantErr: errors.ErrEmpty,
		},
		"invalid balance": {
			genesis: fmt.Sprintf(`{"cash": [{"address": "%s", "balance": "-3"}]}`, a),
			wantErr: errors.ErrInput,
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
			c := NewController()
			gotA, err := c.Balance(db, a)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantA, gotA.String())
			gotB, err := c.Balance(db, b)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantB, gotB.String())
		})
	}
}
