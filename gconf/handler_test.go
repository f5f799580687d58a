package gconf

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
)

type updateTestConfigMsg struct {
	Metadata quorum.Metadata
	Patch    *testConfig
}

func (m *updateTestConfigMsg) Path() string {
	return "test/update_configuration"
}

func (m *updateTestConfigMsg) Validate() error {
	return m.Metadata.Validate()
}

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	admin := weavetest.NewCondition()
	meta := quorum.Metadata{Schema: 1}
	initial := &testConfig{Metadata: meta, Owner: owner.Address(), Limit: 5, Label: "first"}

	cases := map[string]struct {
		init           *testConfig
		initAdmin      func(quorum.ReadOnlyKVStore) (quorum.Address, error)
		msg            quorum.Msg
		signers        []quorum.Condition
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantConfig     *testConfig
	}{
		"owner updates the configuration": {
			init:       initial,
			msg:        &updateTestConfigMsg{Metadata: meta, Patch: &testConfig{Limit: 9, Label: "second"}},
			signers:    []quorum.Condition{owner},
			wantConfig: &testConfig{Metadata: meta, Owner: owner.Address(), Limit: 9, Label: "second"},
		},
		"zero values are not updating the configuration": {
			init:       initial,
			msg:        &updateTestConfigMsg{Metadata: meta, Patch: &testConfig{Label: "third"}},
			signers:    []quorum.Condition{owner},
			wantConfig: &testConfig{Metadata: meta, Owner: owner.Address(), Limit: 5, Label: "third"},
		},
		"message must be signed by the configuration owner": {
			init:           initial,
			msg:            &updateTestConfigMsg{Metadata: meta, Patch: &testConfig{Limit: 1}},
			signers:        []quorum.Condition{weavetest.NewCondition()},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantConfig:     initial,
		},
		"patch is required": {
			init:           initial,
			msg:            &updateTestConfigMsg{Metadata: meta},
			signers:        []quorum.Condition{owner},
			wantCheckErr:   errors.ErrState,
			wantDeliverErr: errors.ErrState,
			wantConfig:     initial,
		},
		"missing configuration without init admin": {
			msg:            &updateTestConfigMsg{Metadata: meta, Patch: initial},
			signers:        []quorum.Condition{owner},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"init admin creates the configuration": {
			initAdmin: func(quorum.ReadOnlyKVStore) (quorum.Address, error) {
				return admin.Address(), nil
			},
			msg:        &updateTestConfigMsg{Metadata: meta, Patch: initial},
			signers:    []quorum.Condition{admin},
			wantConfig: initial,
		},
		"invalid patch result is not saved": {
			initAdmin: func(quorum.ReadOnlyKVStore) (quorum.Address, error) {
				return admin.Address(), nil
			},
			msg:            &updateTestConfigMsg{Metadata: meta, Patch: &testConfig{Label: "no limit"}},
			signers:        []quorum.Condition{admin},
			wantCheckErr:   errors.ErrMetadata,
			wantDeliverErr: errors.ErrMetadata,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.init != nil {
				assert.Nil(t, Save(db, "test", tc.init))
			}
			auth := &weavetest.Auth{Signers: tc.signers}
			h := NewUpdateConfigurationHandler("test", func() OwnedConfig { return &testConfig{} }, auth, tc.initAdmin)
			tx := &weavetest.Tx{Msg: tc.msg}

			cache := db.CacheWrap()
			if _, err := h.Check(context.Background(), cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()
			if _, err := h.Deliver(context.Background(), db, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			var got testConfig
			err := Load(db, "test", &got)
			if tc.wantConfig == nil {
				if !errors.ErrNotFound.Is(err) {
					t.Fatalf("configuration must not exist, got %+v", err)
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.wantConfig, &got)
		})
	}
}
