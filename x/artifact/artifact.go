package artifact

import (
	"fmt"
	"sort"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/codec"
	"github.com/iov-one/quorum/errors"
)

// ConstructorArgs are the arguments an artifact is instantiated with. An
// artifact that takes no arguments can use NoArgs.
type ConstructorArgs interface {
	Validate() error
}

// Artifact is a contract implementation that can be deployed.
type Artifact interface {
	// Name is the unique name of the artifact.
	Name() string

	// NewArgs returns a new, empty instance of the constructor arguments
	// the encoded arguments are decoded into.
	NewArgs() ConstructorArgs

	// Instantiate initializes the state of a new contract instance.
	Instantiate(ctx quorum.Context, db quorum.KVStore, instance, creator quorum.Address, args ConstructorArgs) error
}

// NoArgs is the constructor argument of artifacts that do not take any.
type NoArgs struct{}

func (*NoArgs) Validate() error { return nil }

// EncodeArgs returns the binary representation of constructor arguments,
// as expected by DeployContractMsg.
func EncodeArgs(args ConstructorArgs) ([]byte, error) {
	if args == nil {
		return nil, nil
	}
	return codec.Marshal(args)
}

// decodeArgs decodes the constructor arguments of given artifact. An empty
// payload decodes into zero value arguments.
func decodeArgs(a Artifact, raw []byte) (ConstructorArgs, error) {
	args := a.NewArgs()
	if len(raw) != 0 {
		if err := codec.Unmarshal(raw, args); err != nil {
			return nil, errors.Wrapf(err, "%s constructor arguments", a.Name())
		}
	}
	if err := args.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s constructor arguments", a.Name())
	}
	return args, nil
}

// Registry maps artifact names to their implementation.
type Registry struct {
	artifacts map[string]Artifact
}

// NewRegistry returns a registry with given artifacts registered.
func NewRegistry(artifacts ...Artifact) *Registry {
	r := &Registry{artifacts: make(map[string]Artifact)}
	for _, a := range artifacts {
		r.Register(a)
	}
	return r
}

// Register adds an artifact. It panics if the name is already taken.
func (r *Registry) Register(a Artifact) {
	name := a.Name()
	if name == "" {
		panic("artifact name must not be empty")
	}
	if _, ok := r.artifacts[name]; ok {
		panic(fmt.Sprintf("artifact %q registered twice", name))
	}
	r.artifacts[name] = a
}

// Lookup returns the artifact registered under given name.
func (r *Registry) Lookup(name string) (Artifact, error) {
	a, ok := r.artifacts[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "artifact %q", name)
	}
	return a, nil
}

// Names returns the names of all registered artifacts in alphabetical
// order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.artifacts))
	for n := range r.artifacts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
