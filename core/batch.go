package core

import (
	"errors"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/state"
	"github.com/tos-network/gtoken/core/types"
)

// BatchTransferArgs is one leg of a batch transfer. The full configured fee
// is charged per leg.
type BatchTransferArgs struct {
	Receiver types.Account
	Amount   types.Amount
}

// BatchTransfer executes every leg against one staged balance sheet and
// commits them atomically: either all legs apply and one record per leg is
// appended, or nothing is written. An insufficient-funds failure on any leg
// reports the sender's balance as it was before the batch, not the partially
// debited staged value.
func (l *LedgerState) BatchTransfer(caller common.Address, fromSub *types.Subaccount, transfers []BatchTransferArgs) ([]types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	from := types.NewAccount(caller, fromSub)
	fee, feeTo := l.meta.FeeInfo()

	sheet := state.NewBalanceSheet()
	sheet.StageFrom(l.balances, from)
	sheet.StageFrom(l.balances, feeTo)
	sheet.StageFrom(l.balances, AuctionAccount())
	for _, t := range transfers {
		sheet.StageFrom(l.balances, t.Receiver)
	}
	originalBalance := sheet.BalanceOf(from)

	recs := make([]*types.TxRecord, 0, len(transfers))
	for _, t := range transfers {
		if err := l.transferInternal(sheet, from, t.Receiver, t.Amount, fee, feeTo); err != nil {
			var insufficient *InsufficientFundsError
			if errors.As(err, &insufficient) {
				insufficient.Balance = originalBalance
			}
			return nil, err
		}
		rec := types.TransferRecord(0, from, t.Receiver, t.Amount, fee, nil, now)
		recs = append(recs, &rec)
	}

	batch := l.db.NewBatch()
	l.balances.Commit(batch, sheet)
	ids := l.appendRecords(batch, recs...)
	l.commit(batch)
	return ids, nil
}
