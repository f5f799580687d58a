package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is an ordered list of middleware waiting for the handler it
// wraps.
type Decorators struct {
	chain []quorum.Decorator
}

// ChainDecorators starts a decorator stack. The first decorator given runs
// first. The quorumd application is assembled as
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
func ChainDecorators(chain ...quorum.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a copy of d with more decorators appended. Nil entries are
// skipped so optional middleware can be passed unconditionally.
func (d Decorators) Chain(chain ...quorum.Decorator) Decorators {
	chain = dropNil(chain)
	next := make([]quorum.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	next = append(next, chain...)
	return Decorators{chain: next}
}

// dropNil filters nil interfaces and typed nil pointers out of ds, reusing
// its backing array.
func dropNil(ds []quorum.Decorator) []quorum.Decorator {
	kept := ds[:0]
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// WithHandler closes the stack around h. Every transaction passes the
// decorators in order before it reaches h.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step binds one decorator to the rest of the stack.
type step struct {
	d    quorum.Decorator
	next quorum.Handler
}

var _ quorum.Handler = step{}

func (s step) Check(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

func (s step) Deliver(ctx quorum.Context, store quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
