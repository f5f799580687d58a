package artifact

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/weavetest/assert"
)

// testArtifact records every instantiation. Constructor value 13 fails.
type testArtifact struct {
	name      string
	instances []quorum.Address
}

type testArgs struct {
	Value uint32
}

func (a *testArgs) Validate() error {
	if a.Value == 0 {
		return errors.Wrap(errors.ErrInput, "value required")
	}
	return nil
}

func (t *testArtifact) Name() string { return t.name }

func (t *testArtifact) NewArgs() ConstructorArgs { return &testArgs{} }

func (t *testArtifact) Instantiate(ctx quorum.Context, db quorum.KVStore, instance, creator quorum.Address, args ConstructorArgs) error {
	if args.(*testArgs).Value == 13 {
		return errors.Wrap(errors.ErrState, "unlucky")
	}
	t.instances = append(t.instances, instance)
	return db.Set(instance, []byte{byte(args.(*testArgs).Value)})
}

func TestRegistry(t *testing.T) {
	a := &testArtifact{name: "Alpha"}
	b := &testArtifact{name: "Beta"}
	r := NewRegistry(b, a)

	got, err := r.Lookup("Alpha")
	assert.Nil(t, err)
	assert.Equal(t, Artifact(a), got)
	assert.Equal(t, []string{"Alpha", "Beta"}, r.Names())

	if _, err := r.Lookup("Gamma"); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	assert.Panics(t, func() { r.Register(&testArtifact{name: "Beta"}) })
	assert.Panics(t, func() { r.Register(&testArtifact{}) })
}

func TestDecodeArgs(t *testing.T) {
	a := &testArtifact{name: "Alpha"}

	raw, err := EncodeArgs(&testArgs{Value: 7})
	assert.Nil(t, err)
	args, err := decodeArgs(a, raw)
	assert.Nil(t, err)
	assert.Equal(t, &testArgs{Value: 7}, args)

	// zero value arguments are validated too
	if _, err := decodeArgs(a, nil); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
	if _, err := decodeArgs(a, []byte{0xff, 0xff, 0xff}); !errors.ErrSchema.Is(err) {
		t.Fatalf("want schema error, got %+v", err)
	}

	empty, err := EncodeArgs(&NoArgs{})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(empty))
}
