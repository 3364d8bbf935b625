package core

import (
	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/state"
	"github.com/tos-network/gtoken/core/types"
)

// ApproveArgs carries one allowance approval.
type ApproveArgs struct {
	FromSubaccount *types.Subaccount
	Spender        types.Account
	Amount         types.Amount
}

// TransferFromArgs carries one delegated transfer spending the caller's
// allowance.
type TransferFromArgs struct {
	From   types.Account
	To     types.Account
	Amount types.Amount
}

// Approve sets the spender's allowance over the caller's account to the
// given amount, replacing any previous figure. The configured fee is charged
// from the caller's account. A zero amount clears the allowance entry.
func (l *LedgerState) Approve(caller common.Address, args ApproveArgs) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	from := types.NewAccount(caller, args.FromSubaccount)
	fee, feeTo := l.meta.FeeInfo()

	// Charging the fee is a zero-amount transfer to self through the usual
	// staged path, so the fee split and balance checks stay in one place.
	sheet := state.NewBalanceSheet()
	sheet.StageFrom(l.balances, from)
	sheet.StageFrom(l.balances, feeTo)
	sheet.StageFrom(l.balances, AuctionAccount())

	if err := l.transferInternal(sheet, from, from, types.Amount{}, fee, feeTo); err != nil {
		return 0, err
	}

	batch := l.db.NewBatch()
	l.balances.Commit(batch, sheet)
	rawdb.WriteAllowance(batch, from, args.Spender, args.Amount)
	rec := types.ApproveRecord(0, from, args.Spender, args.Amount, fee, l.now())
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)
	return ids[0], nil
}

// TransferFrom moves args.Amount from args.From to args.To on the strength
// of the allowance args.From granted the caller. Both the amount and the fee
// are debited from args.From and count against the allowance.
func (l *LedgerState) TransferFrom(caller common.Address, args TransferFromArgs) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	spender := types.NewAccount(caller, nil)
	fee, feeTo := l.meta.FeeInfo()

	allowance := rawdb.ReadAllowance(l.db, args.From, spender)
	amountWithFee, ok := args.Amount.Add(fee)
	if !ok {
		return 0, &InsufficientAllowanceError{Allowance: allowance}
	}
	remaining, ok := allowance.Sub(amountWithFee)
	if !ok {
		return 0, &InsufficientAllowanceError{Allowance: allowance}
	}

	sheet := state.NewBalanceSheet()
	sheet.StageFrom(l.balances, args.From)
	sheet.StageFrom(l.balances, args.To)
	sheet.StageFrom(l.balances, feeTo)
	sheet.StageFrom(l.balances, AuctionAccount())

	if err := l.transferInternal(sheet, args.From, args.To, args.Amount, fee, feeTo); err != nil {
		return 0, err
	}

	batch := l.db.NewBatch()
	l.balances.Commit(batch, sheet)
	rawdb.WriteAllowance(batch, args.From, spender, remaining)
	rec := types.TransferFromRecord(0, args.From, args.To, spender, args.Amount, fee, l.now())
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)
	return ids[0], nil
}
