// Package state implements the balances store of the token ledger and the
// staged balance sheets used to make multi-account mutations atomic.
package state

import (
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/tokendb"
)

// Balances is the live Account -> Amount store. Absent accounts read as
// zero and zero balances are never persisted, so the table only grows with
// funded accounts.
type Balances struct {
	db tokendb.KeyValueStore
}

// NewBalances wraps the given database as the balances store.
func NewBalances(db tokendb.KeyValueStore) *Balances {
	return &Balances{db: db}
}

// BalanceOf returns the stored balance of an account, zero if absent.
func (b *Balances) BalanceOf(account types.Account) types.Amount {
	return rawdb.ReadBalance(b.db, account)
}

// Commit merges a fully validated balance sheet into the store through the
// given writer, entry by entry. It performs no validation: by contract it is
// only called once a computation has already proven success, so it cannot
// fail. Zero entries are deleted, preserving the no-zero-entry invariant.
func (b *Balances) Commit(w tokendb.KeyValueWriter, sheet *BalanceSheet) {
	for account, amount := range sheet.entries {
		rawdb.WriteBalance(w, account, amount)
	}
}

// ForEach invokes fn for every funded account until fn returns false.
func (b *Balances) ForEach(fn func(types.Account, types.Amount) bool) {
	rawdb.ForEachBalance(b.db, fn)
}

// Sum returns the sum of all stored balances. The 128-bit supply cap makes
// overflow impossible for any store that satisfied the conservation
// invariant, but the checked add is kept so a corrupted store fails loudly.
func (b *Balances) Sum() types.Amount {
	total := types.Amount{}
	b.ForEach(func(_ types.Account, amount types.Amount) bool {
		var ok bool
		if total, ok = total.Add(amount); !ok {
			panic("balances store exceeds 128-bit supply")
		}
		return true
	})
	return total
}

// BalanceSheet is a small staged view over the handful of accounts one
// operation touches. Reading every touched account into the sheet before any
// mutation makes aliasing harmless: when sender, recipient, fee recipient or
// auction escrow coincide, they share one staged entry.
type BalanceSheet struct {
	entries map[types.Account]types.Amount
}

// NewBalanceSheet returns an empty staged sheet.
func NewBalanceSheet() *BalanceSheet {
	return &BalanceSheet{entries: make(map[types.Account]types.Amount)}
}

// StageFrom copies the live balance of an account into the sheet. Staging an
// already staged account is a no-op, so staged mutations survive re-staging
// of aliased accounts.
func (s *BalanceSheet) StageFrom(b *Balances, account types.Account) {
	if _, ok := s.entries[account]; ok {
		return
	}
	s.entries[account] = b.BalanceOf(account)
}

// BalanceOf returns the staged balance of an account, zero if not staged.
func (s *BalanceSheet) BalanceOf(account types.Account) types.Amount {
	return s.entries[account]
}

// SetBalance replaces the staged balance of an account.
func (s *BalanceSheet) SetBalance(account types.Account, amount types.Amount) {
	s.entries[account] = amount
}

// Len returns the number of staged accounts.
func (s *BalanceSheet) Len() int {
	return len(s.entries)
}
