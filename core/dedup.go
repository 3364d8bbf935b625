package core

import (
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/params"
)

// validateCreatedAtTime checks the caller-supplied creation timestamp against
// the dedup window and scans the recent ledger tail for a duplicate
// submission. It returns the timestamp the new record must carry. Callers
// hold the write lock.
//
// A missing CreatedAtTime opts out of deduplication entirely and timestamps
// the record with the current ledger time.
func (l *LedgerState) validateCreatedAtTime(from types.Account, args *TransferArgs, now uint64) (uint64, error) {
	if args.CreatedAtTime == nil {
		return now, nil
	}
	createdAt := *args.CreatedAtTime

	if createdAt < now && now-createdAt > params.TxWindow {
		return 0, &TooOldError{AllowedWindowNanos: params.TxWindow}
	}
	if createdAt > now && createdAt-now > params.PermittedDrift {
		return 0, &CreatedInFutureError{LedgerTime: now}
	}

	// Records are appended in call order with non-decreasing ledger time, so
	// the scan walks backwards and stops at the first record older than the
	// window.
	for id := rawdb.ReadLedgerLength(l.db); id > 0; id-- {
		rec := rawdb.ReadTxRecord(l.db, id-1)
		if rec == nil {
			continue
		}
		if now > rec.Timestamp && now-rec.Timestamp > params.TxWindow {
			break
		}
		if isDuplicate(rec, from, args, createdAt) {
			return 0, &DuplicateError{DuplicateOf: rec.Index}
		}
	}
	return createdAt, nil
}

// isDuplicate reports whether rec documents an earlier submission of the same
// transfer. An omitted args.Fee matches any recorded fee; memos must either
// both be absent or compare equal.
func isDuplicate(rec *types.TxRecord, from types.Account, args *TransferArgs, createdAt uint64) bool {
	if rec.Timestamp != createdAt || rec.From != from || rec.To != args.To || rec.Amount != args.Amount {
		return false
	}
	if args.Fee != nil && *args.Fee != rec.Fee {
		return false
	}
	if (args.Memo == nil) != (rec.Memo == nil) {
		return false
	}
	return args.Memo == nil || *args.Memo == *rec.Memo
}
