package core

import (
	"github.com/sirupsen/logrus"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/types"
)

// MintToAccountID credits amount to the pending-claim bucket of a legacy
// account identifier. No live balance is touched; the rightful key holder
// redeems the bucket with Claim. Repeated credits accumulate.
func (l *LedgerState) MintToAccountID(to types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending, ok := rawdb.ReadClaim(l.db, to).Add(amount)
	if !ok {
		return ErrAmountOverflow
	}
	rawdb.WriteClaim(l.db, to, pending)
	return nil
}

// Claim redeems the pending bucket of a legacy account identifier into the
// caller's live account. The caller and subaccount must re-derive the
// claimed identifier; a claim can be redeemed exactly once.
func (l *LedgerState) Claim(caller common.Address, accountID types.AccountID, sub *types.Subaccount) (types.TxID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if types.NewAccountID(caller, sub) != accountID {
		return 0, ErrClaimNotAllowed
	}
	if !rawdb.HasClaim(l.db, accountID) {
		return 0, ErrClaimNotAllowed
	}
	amount := rawdb.ReadClaim(l.db, accountID)

	to := types.NewAccount(caller, sub)
	batch := l.db.NewBatch()
	if err := l.stageMint(batch, to, amount); err != nil {
		return 0, err
	}
	rawdb.DeleteClaim(batch, accountID)
	rec := types.MintRecord(0, to, to, amount, l.now())
	ids := l.appendRecords(batch, &rec)
	l.commit(batch)

	logrus.WithFields(logrus.Fields{
		"accountID": accountID,
		"to":        to,
		"amount":    amount,
	}).Info("Redeemed legacy claim")
	return ids[0], nil
}
