// Released under an MIT license. See LICENSE.

// Package state holds the accounts of a cvm machine.
//
// The state is a vector of account records indexed by address. Every
// update returns a new state that shares structure with the old one.
package state

import (
	"github.com/michaelmacinnis/cvm/internal/common/encoding"
	"github.com/michaelmacinnis/cvm/internal/common/interface/cell"
	"github.com/michaelmacinnis/cvm/internal/common/struct/digest"
	"github.com/michaelmacinnis/cvm/internal/common/type/addr"
	"github.com/michaelmacinnis/cvm/internal/common/type/errsys"
	"github.com/michaelmacinnis/cvm/internal/common/type/hashmap"
	"github.com/michaelmacinnis/cvm/internal/common/type/kw"
	"github.com/michaelmacinnis/cvm/internal/common/type/null"
	"github.com/michaelmacinnis/cvm/internal/common/type/num"
	"github.com/michaelmacinnis/cvm/internal/common/type/record"
	"github.com/michaelmacinnis/cvm/internal/common/type/ref"
	"github.com/michaelmacinnis/cvm/internal/common/type/sym"
	"github.com/michaelmacinnis/cvm/internal/common/type/vector"
)

// Core is the address of the account holding the core library.
const Core = 0

//nolint:gochecknoglobals
var (
	// Account is the format shared by all account records.
	Account = record.NewFormat(kw.New("sequence"), kw.New("environment"))

	// Aliases is the symbol bound to an account's alias map.
	Aliases = sym.New("*aliases*")

	environment = kw.New("environment")
	sequence    = kw.New("sequence")
)

// T (state) is the set of accounts.
type T struct {
	accounts *vector.T
}

type state = T

// New creates a state from a vector of account records.
func New(accounts *vector.T) *state {
	for _, a := range accounts.Values() {
		a = ref.Deref(a)
		if !record.Is(a) || !record.To(a).Format().Keys().Equal(Account.Keys()) {
			panic(errsys.New(errsys.STATE, "not an account: %v", a))
		}
	}

	return &state{accounts: accounts}
}

// Genesis creates a state with the core library at address 0 followed by
// n user accounts. Each user account aliases the core library.
func Genesis(core *hashmap.T, n int) *state {
	s := &state{accounts: vector.New(account(core))}

	for i := 0; i < n; i++ {
		s, _ = s.Deploy(Seed())
	}

	return s
}

// Seed returns the initial environment of a new account.
func Seed() *hashmap.T {
	return hashmap.New(Aliases, hashmap.New(null.Nil, addr.New(Core)))
}

// Account returns the account record at address a.
func (s *state) Account(a uint64) (*record.T, bool) {
	if a >= uint64(s.accounts.Count()) {
		return nil, false
	}

	return record.To(ref.Deref(s.accounts.Nth(int64(a)))), true
}

// Accounts returns the vector of account records.
func (s *state) Accounts() *vector.T {
	return s.accounts
}

// Count returns the number of accounts.
func (s *state) Count() int64 {
	return s.accounts.Count()
}

// Define binds k to v in the environment of the account at address a.
func (s *state) Define(a uint64, k, v cell.I) *state {
	env := s.Environment(a)

	return s.update(a, environment, env.Assoc(k, v))
}

// Deploy creates a new account with the environment env.
func (s *state) Deploy(env *hashmap.T) (*state, *addr.T) {
	a := addr.New(uint64(s.accounts.Count()))

	return &state{accounts: s.accounts.Conj(account(env))}, a
}

// Environment returns the environment of the account at address a.
func (s *state) Environment(a uint64) *hashmap.T {
	r := s.must(a)

	v, _ := r.Get(environment)

	return hashmap.To(ref.Deref(v))
}

// Hash returns the digest of the state.
func (s *state) Hash() digest.T {
	return encoding.Hash(s.accounts)
}

// Increment adds one to the sequence number of the account at address a.
func (s *state) Increment(a uint64) *state {
	return s.update(a, sequence, num.Int(s.Sequence(a)+1))
}

// Lookup returns the value bound to k in the account at address a.
func (s *state) Lookup(a uint64, k cell.I) (cell.I, bool) {
	r, ok := s.Account(a)
	if !ok {
		return nil, false
	}

	v, _ := r.Get(environment)

	return hashmap.To(ref.Deref(v)).Get(k)
}

// Sequence returns the number of transactions committed by the account
// at address a.
func (s *state) Sequence(a uint64) int64 {
	v, _ := s.must(a).Get(sequence)

	return num.To(ref.Deref(v)).Int64()
}

func (s *state) must(a uint64) *record.T {
	r, ok := s.Account(a)
	if !ok {
		panic(errsys.New(errsys.STATE, "no account at #%d", a))
	}

	return r
}

func (s *state) update(a uint64, k, v cell.I) *state {
	r := record.To(s.must(a).Assoc(k, v))

	return &state{accounts: s.accounts.Assoc(int64(a), r)}
}

func account(env *hashmap.T) *record.T {
	return record.New(Account, num.Int(0), env)
}
