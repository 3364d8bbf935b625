package core

import (
	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/state"
	"github.com/tos-network/gtoken/core/types"
)

// TransferArgs carries one transfer submission. Optional fields are nil when
// omitted by the caller.
type TransferArgs struct {
	FromSubaccount *types.Subaccount
	To             types.Account
	Amount         types.Amount
	// Fee, when set, must equal the configured fee exactly. It also narrows
	// duplicate detection: an omitted fee matches any recorded fee.
	Fee           *types.Amount
	Memo          *types.Memo
	CreatedAtTime *uint64 // nanoseconds
}

// withAmount returns a copy of the args with the amount replaced.
func (a TransferArgs) withAmount(amount types.Amount) TransferArgs {
	a.Amount = amount
	return a
}

// Transfer moves args.Amount from the caller's account to args.To, charging
// the configured fee on top. It returns the index of the appended transaction
// record.
func (l *LedgerState) Transfer(caller common.Address, args TransferArgs) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(caller, args)
}

// TransferIncludeFee moves a gross amount that already contains the fee: the
// caller is debited exactly args.Amount and the recipient receives
// args.Amount minus the fee. Amounts that do not exceed the fee fail with
// ErrAmountTooSmall.
func (l *LedgerState) TransferIncludeFee(caller common.Address, args TransferArgs) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fee, _ := l.meta.FeeInfo()
	adjusted, ok := args.Amount.Sub(fee)
	if !ok || adjusted.IsZero() {
		return 0, ErrAmountTooSmall
	}
	return l.transfer(caller, args.withAmount(adjusted))
}

// transfer implements both entry points. Callers hold the write lock.
func (l *LedgerState) transfer(caller common.Address, args TransferArgs) (types.TxID, error) {
	now := l.now()
	from := types.NewAccount(caller, args.FromSubaccount)

	createdAt, err := l.validateCreatedAtTime(from, &args, now)
	if err != nil {
		return 0, err
	}

	fee, feeTo := l.meta.FeeInfo()
	if args.Fee != nil && *args.Fee != fee {
		return 0, &BadFeeError{ExpectedFee: fee}
	}

	// Stage the current balances of every account this transfer may touch.
	// The four accounts can alias one another (e.g. from == feeTo); staging
	// them into one sheet before mutating makes the aliases share an entry.
	sheet := state.NewBalanceSheet()
	sheet.StageFrom(l.balances, from)
	sheet.StageFrom(l.balances, args.To)
	sheet.StageFrom(l.balances, feeTo)
	sheet.StageFrom(l.balances, AuctionAccount())

	if err := l.transferInternal(sheet, from, args.To, args.Amount, fee, feeTo); err != nil {
		return 0, err
	}

	// Everything is validated; first durable write starts here.
	batch := l.db.NewBatch()
	l.balances.Commit(batch, sheet)
	rec := types.TransferRecord(0, from, args.To, args.Amount, fee, args.Memo, createdAt)
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)
	return ids[0], nil
}

// transferInternal applies one debit/credit/fee-split round onto a staged
// sheet. All four accounts must already be staged. On error the sheet may be
// partially mutated and must be discarded; the live store is untouched.
func (l *LedgerState) transferInternal(sheet *state.BalanceSheet, from, to types.Account, amount, fee types.Amount, feeTo types.Account) error {
	fromBalance := sheet.BalanceOf(from)

	// If amount+fee overflows 128 bits no balance can cover it either, so it
	// reports as insufficient funds rather than overflow.
	amountWithFee, ok := amount.Add(fee)
	if !ok {
		return &InsufficientFundsError{Balance: fromBalance}
	}
	updatedFrom, ok := fromBalance.Sub(amountWithFee)
	if !ok {
		return &InsufficientFundsError{Balance: fromBalance}
	}
	sheet.SetBalance(from, updatedFrom)

	updatedTo, ok := sheet.BalanceOf(to).Add(amount)
	if !ok {
		return ErrAmountOverflow
	}
	sheet.SetBalance(to, updatedTo)

	// Split the fee between the fee recipient and the auction escrow. The
	// auction share floors, so the recipient absorbs the remainder and the
	// two shares always sum to the fee exactly.
	auctionFee := fee.MulBPS(l.meta.FeeRatioBPS)
	ownerFee, _ := fee.Sub(auctionFee)

	updatedFeeTo, ok := sheet.BalanceOf(feeTo).Add(ownerFee)
	if !ok {
		return ErrAmountOverflow
	}
	sheet.SetBalance(feeTo, updatedFeeTo)

	auction := AuctionAccount()
	updatedAuction, ok := sheet.BalanceOf(auction).Add(auctionFee)
	if !ok {
		return ErrAmountOverflow
	}
	sheet.SetBalance(auction, updatedAuction)
	return nil
}
