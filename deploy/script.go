package deploy

import (
	"context"
	"sort"

	"github.com/iov-one/quorum/errors"
)

// ScriptFunc is the body of a migration script. It receives the deployer of
// the network, the network name and the accounts the network provides.
type ScriptFunc func(ctx context.Context, deployer *Deployer, network string, accounts *Accounts) error

// Script is a registered migration script.
type Script struct {
	Number int
	Name   string
	Run    ScriptFunc
}

// Scripts is a set of migration scripts indexed by their number.
type Scripts struct {
	scripts map[int]Script
}

// NewScripts returns an empty script set.
func NewScripts() *Scripts {
	return &Scripts{scripts: make(map[int]Script)}
}

// Register adds a script. Numbers start at 1 and must be unique.
func (s *Scripts) Register(number int, name string, fn ScriptFunc) error {
	if number < 1 {
		return errors.Wrapf(errors.ErrInput, "script number must be positive, got %d", number)
	}
	if name == "" {
		return errors.Wrap(errors.ErrEmpty, "script name")
	}
	if fn == nil {
		return errors.Wrapf(errors.ErrInput, "script %d has no body", number)
	}
	if prev, ok := s.scripts[number]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "script %d already registered as %q", number, prev.Name)
	}
	s.scripts[number] = Script{Number: number, Name: name, Run: fn}
	return nil
}

// MustRegister is like Register but panics on failure.
func (s *Scripts) MustRegister(number int, name string, fn ScriptFunc) {
	if err := s.Register(number, name, fn); err != nil {
		panic(err)
	}
}

// List returns all scripts in ascending order of their numbers.
func (s *Scripts) List() []Script {
	res := make([]Script, 0, len(s.scripts))
	for _, sc := range s.scripts {
		res = append(res, sc)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Number < res[j].Number })
	return res
}

// DefaultScripts are the scripts registered with the package level
// Register functions.
var DefaultScripts = NewScripts()

// Register adds a script to DefaultScripts.
func Register(number int, name string, fn ScriptFunc) error {
	return DefaultScripts.Register(number, name, fn)
}

// MustRegister adds a script to DefaultScripts and panics on failure.
func MustRegister(number int, name string, fn ScriptFunc) {
	DefaultScripts.MustRegister(number, name, fn)
}
