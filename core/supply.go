package core

import (
	"github.com/sirupsen/logrus"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/state"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/tokendb"
)

// Mint credits amount to the target account and grows the total supply.
// Minting is fee-free and exempt from deduplication. Access control over who
// may mint is the host's responsibility.
func (l *LedgerState) Mint(caller common.Address, to types.Account, amount types.Amount) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mint(types.NewAccount(caller, nil), to, amount)
}

// mint implements Mint and the claim redemption path. Callers hold the write
// lock.
func (l *LedgerState) mint(caller, to types.Account, amount types.Amount) (types.TxID, error) {
	batch := l.db.NewBatch()
	if err := l.stageMint(batch, to, amount); err != nil {
		return 0, err
	}
	rec := types.MintRecord(0, caller, to, amount, l.now())
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)
	return ids[0], nil
}

// stageMint stages the balance credit and supply growth of a mint into the
// batch without committing it, so callers can bundle further writes.
func (l *LedgerState) stageMint(batch tokendb.Batch, to types.Account, amount types.Amount) error {
	updated, ok := l.balances.BalanceOf(to).Add(amount)
	if !ok {
		return ErrAmountOverflow
	}
	supply, ok := rawdb.ReadTotalSupply(l.db).Add(amount)
	if !ok {
		return ErrAmountOverflow
	}

	sheet := state.NewBalanceSheet()
	sheet.SetBalance(to, updated)
	l.balances.Commit(batch, sheet)
	rawdb.WriteTotalSupply(batch, supply)
	return nil
}

// Burn debits amount from the target account and shrinks the total supply.
// Burning is fee-free and exempt from deduplication; a zero-amount burn
// succeeds and is still recorded. Access control is the host's
// responsibility.
func (l *LedgerState) Burn(caller common.Address, from types.Account, amount types.Amount) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances.BalanceOf(from)
	updated, ok := balance.Sub(amount)
	if !ok {
		return 0, &InsufficientFundsError{Balance: balance}
	}
	// Every burned unit was minted into the supply total, so the subtraction
	// cannot underflow on an uncorrupted store.
	supply, ok := rawdb.ReadTotalSupply(l.db).Sub(amount)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"supply": rawdb.ReadTotalSupply(l.db),
			"amount": amount,
		}).Panic("Total supply underflow")
	}

	sheet := state.NewBalanceSheet()
	sheet.SetBalance(from, updated)

	batch := l.db.NewBatch()
	l.balances.Commit(batch, sheet)
	rawdb.WriteTotalSupply(batch, supply)
	rec := types.BurnRecord(0, types.NewAccount(caller, nil), from, amount, l.now())
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)

	logrus.WithFields(logrus.Fields{
		"from":   from,
		"amount": amount,
		"id":     ids[0],
	}).Debug("Burned tokens")
	return ids[0], nil
}
