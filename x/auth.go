package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper
	GetConditions(quorum.Context) []quorum.Condition
	// HasAddress checks if any condition matches this address
	HasAddress(quorum.Context, quorum.Address) bool
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators. A
// condition fulfilled by more than one Authenticator is returned once, in
// the position it was first seen.
func (m MultiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var res []quorum.Condition
	for _, impl := range m.impls {
		for _, c := range impl.GetConditions(ctx) {
			if !hasCondition(res, c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator
func GetAddresses(ctx quorum.Context, auth Authenticator) []quorum.Address {
	conds := auth.GetConditions(ctx)
	addrs := make([]quorum.Address, len(conds))
	for i, c := range conds {
		addrs[i] = c.Address()
	}
	return addrs
}

// MainSigner returns the first condition if any, otherwise nil
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are also in
// context.
func HasAllAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address) bool {
	return HasNAddresses(ctx, auth, required, len(required))
}

// HasNAddresses returns true if at least n distinct elements in required
// are also in context.
func HasNAddresses(ctx quorum.Context, auth Authenticator, required []quorum.Address, n int) bool {
	return CountAddresses(ctx, auth, required) >= n
}

// CountAddresses returns how many distinct addresses from the given list are
// authenticated in the context.
func CountAddresses(ctx quorum.Context, auth Authenticator, addrs []quorum.Address) int {
	var (
		n    int
		seen []quorum.Address
	)
	for _, a := range addrs {
		if containsAddress(seen, a) {
			continue
		}
		seen = append(seen, a)
		if auth.HasAddress(ctx, a) {
			n++
		}
	}
	return n
}

// HasAllConditions returns true if all elements in required are also in
// context.
func HasAllConditions(ctx quorum.Context, auth Authenticator, required []quorum.Condition) bool {
	return HasNConditions(ctx, auth, required, len(required))
}

// HasNConditions returns true if at least n elements in requested are also
// in context. Useful for threshold conditions (1 of 3, 3 of 5, etc...)
func HasNConditions(ctx quorum.Context, auth Authenticator, requested []quorum.Condition, n int) bool {
	if n <= 0 {
		return true
	}
	conds := auth.GetConditions(ctx)
	for _, c := range requested {
		if hasCondition(conds, c) {
			n--
			if n == 0 {
				return true
			}
		}
	}
	return false
}

func hasCondition(conds []quorum.Condition, c quorum.Condition) bool {
	for _, have := range conds {
		if have.Equals(c) {
			return true
		}
	}
	return false
}

func containsAddress(addrs []quorum.Address, a quorum.Address) bool {
	for _, have := range addrs {
		if have.Equals(a) {
			return true
		}
	}
	return false
}
