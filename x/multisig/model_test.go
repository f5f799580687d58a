package multisig

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/weavetest"
	"github.com/iov-one/quorum/weavetest/assert"
	"github.com/iov-one/quorum/x/artifact"
)

func TestConstructorArgs(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	cases := map[string]struct {
		args      ConstructorArgs
		wantField string
		wantErr   *errors.Error
	}{
		"valid": {
			args: ConstructorArgs{Owners: []quorum.Address{a, b}, Required: 2},
		},
		"no owners": {
			args:      ConstructorArgs{Required: 1},
			wantField: "Owners",
			wantErr:   ErrInvalidRequirement,
		},
		"duplicated owner": {
			args:      ConstructorArgs{Owners: []quorum.Address{a, a}, Required: 1},
			wantField: "Owners",
			wantErr:   errors.ErrDuplicate,
		},
		"invalid owner": {
			args:      ConstructorArgs{Owners: []quorum.Address{a, quorum.Address("short")}, Required: 1},
			wantField: "Owners",
			wantErr:   errors.ErrInput,
		},
		"zero requirement": {
			args:      ConstructorArgs{Owners: []quorum.Address{a}},
			wantField: "Required",
			wantErr:   ErrInvalidRequirement,
		},
		"requirement above owner count": {
			args:      ConstructorArgs{Owners: []quorum.Address{a, b}, Required: 3},
			wantField: "Required",
			wantErr:   ErrInvalidRequirement,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.args.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.wantField, tc.wantErr)
		})
	}
}

func TestInstantiate(t *testing.T) {
	ctx := context.Background()
	owners := []quorum.Address{
		weavetest.NewCondition().Address(),
		weavetest.NewCondition().Address(),
		weavetest.NewCondition().Address(),
	}

	db := store.MemStore()
	inst, err := artifact.Deploy(ctx, db, Artifact{}, owners[0], &ConstructorArgs{Owners: owners, Required: 2})
	assert.Nil(t, err)
	assert.Equal(t, ArtifactName, inst.Artifact)

	w, err := LoadWallet(db, inst.Address)
	assert.Nil(t, err)
	assert.Equal(t, owners, w.Owners)
	assert.Equal(t, uint32(2), w.Required)
	assert.Equal(t, uint64(0), w.TransactionCount)
	assert.Equal(t, true, w.IsOwner(owners[2]))
	assert.Equal(t, false, w.IsOwner(inst.Address))

	err = Artifact{}.Instantiate(ctx, db, inst.Address, owners[0], &ConstructorArgs{Owners: owners, Required: 1})
	if !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}
	err = Artifact{}.Instantiate(ctx, db, owners[1], owners[0], &artifact.NoArgs{})
	if !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}

	// the configuration limits the number of owners
	conf := &Configuration{
		Metadata:      quorum.Metadata{Schema: 1},
		Owner:         owners[0],
		MaxOwnerCount: 2,
	}
	assert.Nil(t, gconf.Save(db, gconfPackage, conf))
	_, err = artifact.Deploy(ctx, db, Artifact{}, owners[0], &ConstructorArgs{Owners: owners, Required: 2})
	if !ErrInvalidRequirement.Is(err) {
		t.Fatalf("want invalid requirement error, got %+v", err)
	}
	_, err = artifact.Deploy(ctx, db, Artifact{}, owners[0], &ConstructorArgs{Owners: owners[:2], Required: 2})
	assert.Nil(t, err)
}

func TestTransactionKeyOrder(t *testing.T) {
	wallet := weavetest.NewCondition().Address()
	assert.Equal(t, -1, bytes.Compare(transactionKey(wallet, 9), transactionKey(wallet, 10)))
	assert.Equal(t, -1, bytes.Compare(transactionKey(wallet, 255), transactionKey(wallet, 256)))
}
