package types

// TxID is the index of a transaction record in the ledger, assigned
// monotonically from zero with no gaps.
type TxID = uint64

// Operation is the kind of ledger mutation a transaction record documents.
type Operation uint8

const (
	OpTransfer Operation = iota
	OpTransferFrom
	OpApprove
	OpMint
	OpBurn
	OpAuction
)

// String implements fmt.Stringer.
func (op Operation) String() string {
	switch op {
	case OpTransfer:
		return "transfer"
	case OpTransferFrom:
		return "transferFrom"
	case OpApprove:
		return "approve"
	case OpMint:
		return "mint"
	case OpBurn:
		return "burn"
	case OpAuction:
		return "auction"
	default:
		return "unknown"
	}
}

// TxStatus is the terminal status of a recorded transaction. Records are
// appended only for operations that succeeded, so today every stored record
// carries TxSucceeded; the field is kept for schema compatibility with hosts
// that inspect records.
type TxStatus uint8

const (
	TxSucceeded TxStatus = iota
	TxFailed
)

// TxRecord is one immutable entry of the append-only transaction ledger.
// Records are created as a side effect of a successful balance mutation and
// are never modified or deleted afterwards.
type TxRecord struct {
	Index     TxID
	Operation Operation
	Status    TxStatus
	From      Account
	To        Account
	Amount    Amount
	Fee       Amount
	Memo      *Memo
	Timestamp uint64 // nanoseconds
	Caller    Account
}

// TransferRecord builds the record of a plain transfer.
func TransferRecord(index TxID, from, to Account, amount, fee Amount, memo *Memo, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpTransfer,
		Status:    TxSucceeded,
		From:      from,
		To:        to,
		Amount:    amount,
		Fee:       fee,
		Memo:      memo,
		Timestamp: timestamp,
		Caller:    from,
	}
}

// TransferFromRecord builds the record of a delegated transfer; the caller is
// the spender, not the debited account.
func TransferFromRecord(index TxID, from, to, caller Account, amount, fee Amount, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpTransferFrom,
		Status:    TxSucceeded,
		From:      from,
		To:        to,
		Amount:    amount,
		Fee:       fee,
		Timestamp: timestamp,
		Caller:    caller,
	}
}

// ApproveRecord builds the record of an allowance approval.
func ApproveRecord(index TxID, from, to Account, amount, fee Amount, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpApprove,
		Status:    TxSucceeded,
		From:      from,
		To:        to,
		Amount:    amount,
		Fee:       fee,
		Timestamp: timestamp,
		Caller:    from,
	}
}

// MintRecord builds the record of a supply-increasing mint.
func MintRecord(index TxID, caller, to Account, amount Amount, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpMint,
		Status:    TxSucceeded,
		From:      caller,
		To:        to,
		Amount:    amount,
		Timestamp: timestamp,
		Caller:    caller,
	}
}

// BurnRecord builds the record of a supply-decreasing burn. From and To both
// name the debited account.
func BurnRecord(index TxID, caller, from Account, amount Amount, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpBurn,
		Status:    TxSucceeded,
		From:      from,
		To:        from,
		Amount:    amount,
		Timestamp: timestamp,
		Caller:    caller,
	}
}

// AuctionRecord builds the record of an auction escrow disbursement performed
// by the external bidding subsystem.
func AuctionRecord(index TxID, to Account, amount Amount, timestamp uint64) TxRecord {
	return TxRecord{
		Index:     index,
		Operation: OpAuction,
		Status:    TxSucceeded,
		From:      to,
		To:        to,
		Amount:    amount,
		Timestamp: timestamp,
		Caller:    to,
	}
}
