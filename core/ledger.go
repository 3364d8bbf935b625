// Package core implements the token ledger engine: balances, transfers with
// deterministic fee collection, supply changes, allowances, legacy claims and
// the append-only transaction log that documents all of them.
//
// Every operation follows the same discipline: read the touched accounts
// into a staged balance sheet, run every check against the staged values,
// and only once nothing can fail anymore commit the sheet together with the
// new transaction records in a single database batch. No error can occur
// after the first durable write begins.
package core

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/state"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/params"
	"github.com/tos-network/gtoken/tokendb"
)

// Clock supplies ledger time in nanoseconds. It is sampled exactly once per
// invocation and treated as constant for its duration.
type Clock func() uint64

func systemClock() uint64 {
	return uint64(time.Now().UnixNano())
}

// Token is the abstract ledger interface consumed by hosts. *LedgerState is
// its concrete implementation.
type Token interface {
	Transfer(caller common.Address, args TransferArgs) (types.TxID, error)
	TransferIncludeFee(caller common.Address, args TransferArgs) (types.TxID, error)
	BatchTransfer(caller common.Address, fromSub *types.Subaccount, transfers []BatchTransferArgs) ([]types.TxID, error)
	TransferFrom(caller common.Address, args TransferFromArgs) (types.TxID, error)
	Approve(caller common.Address, args ApproveArgs) (types.TxID, error)
	Mint(caller common.Address, to types.Account, amount types.Amount) (types.TxID, error)
	Burn(caller common.Address, from types.Account, amount types.Amount) (types.TxID, error)
	MintToAccountID(to types.AccountID, amount types.Amount) error
	Claim(caller common.Address, accountID types.AccountID, sub *types.Subaccount) (types.TxID, error)

	BalanceOf(account types.Account) types.Amount
	Allowance(owner, spender types.Account) types.Amount
	TotalSupply() types.Amount
	ClaimAmount(id types.AccountID) types.Amount
	GetTransaction(id types.TxID) *types.TxRecord
	GetTransactions(start types.TxID, limit int) []types.TxRecord
	Length() uint64
}

// LedgerState is the explicit state handle every operation runs against. It
// exclusively owns the balances store and the transaction log inside db. The
// mutex serializes invocations, reproducing the run-to-completion atomicity
// of a single-threaded host for multi-goroutine ones.
type LedgerState struct {
	mu       sync.RWMutex
	db       tokendb.KeyValueStore
	balances *state.Balances
	meta     *types.Metadata
	now      Clock
}

var _ Token = (*LedgerState)(nil)

// AuctionAccount returns the reserved fee-escrow account. The engine only
// ever credits it through fee splitting; the external bidding subsystem owns
// and drains it.
func AuctionAccount() types.Account {
	return types.NewAccount(params.AuctionOwner, nil)
}

// Init writes the token metadata into an empty database, mints the initial
// supply to the owner, and returns the ready state handle. A nil clock
// selects the system clock.
func Init(db tokendb.KeyValueStore, meta *types.Metadata, initialSupply types.Amount, clock Clock) (*LedgerState, error) {
	if rawdb.ReadMetadata(db) != nil {
		return nil, ErrAlreadyInitialized
	}
	rawdb.WriteMetadata(db, meta)

	l := newLedgerState(db, meta, clock)
	if !initialSupply.IsZero() {
		if _, err := l.Mint(meta.Owner, types.NewAccount(meta.Owner, nil), initialSupply); err != nil {
			return nil, err
		}
	}
	logrus.WithFields(logrus.Fields{
		"name":   meta.Name,
		"symbol": meta.Symbol,
		"owner":  meta.Owner.Hex(),
		"supply": initialSupply,
	}).Info("Initialized token ledger")
	return l, nil
}

// Open returns the state handle of an already initialized database. A nil
// clock selects the system clock.
func Open(db tokendb.KeyValueStore, clock Clock) (*LedgerState, error) {
	meta := rawdb.ReadMetadata(db)
	if meta == nil {
		return nil, ErrNotInitialized
	}
	return newLedgerState(db, meta, clock), nil
}

func newLedgerState(db tokendb.KeyValueStore, meta *types.Metadata, clock Clock) *LedgerState {
	if clock == nil {
		clock = systemClock
	}
	return &LedgerState{
		db:       db,
		balances: state.NewBalances(db),
		meta:     meta,
		now:      clock,
	}
}

// Metadata returns a copy of the current token metadata.
func (l *LedgerState) Metadata() types.Metadata {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return *l.meta
}

// SetFee updates the flat transfer fee. Access control over who may change
// the fee is the host's responsibility.
func (l *LedgerState) SetFee(fee types.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.meta.Fee = fee
	rawdb.WriteMetadata(l.db, l.meta)
}

// SetFeeTo updates the account receiving the owner share of collected fees.
// The fee recipient is consulted at transfer time, so this takes effect for
// every subsequent operation.
func (l *LedgerState) SetFeeTo(feeTo types.Account) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.meta.FeeTo = feeTo
	rawdb.WriteMetadata(l.db, l.meta)
}

// SetFeeRatio updates the basis-point share of each fee routed to the
// auction escrow. Values above params.MaxFeeRatioBPS are clamped.
func (l *LedgerState) SetFeeRatio(bps uint16) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if bps > params.MaxFeeRatioBPS {
		bps = params.MaxFeeRatioBPS
	}
	l.meta.FeeRatioBPS = bps
	rawdb.WriteMetadata(l.db, l.meta)
}

// BalanceOf returns the live balance of an account, zero for absent ones.
func (l *LedgerState) BalanceOf(account types.Account) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances.BalanceOf(account)
}

// Allowance returns the remaining allowance granted by owner to spender.
func (l *LedgerState) Allowance(owner, spender types.Account) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rawdb.ReadAllowance(l.db, owner, spender)
}

// TotalSupply returns total minted minus total burned.
func (l *LedgerState) TotalSupply() types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rawdb.ReadTotalSupply(l.db)
}

// ClaimAmount returns the pending claim for a legacy account identifier.
func (l *LedgerState) ClaimAmount(id types.AccountID) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rawdb.ReadClaim(l.db, id)
}

// GetTransaction returns the transaction record at the given index, nil if
// it does not exist.
func (l *LedgerState) GetTransaction(id types.TxID) *types.TxRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rawdb.ReadTxRecord(l.db, id)
}

// GetTransactions returns up to limit records starting at start, in index
// order.
func (l *LedgerState) GetTransactions(start types.TxID, limit int) []types.TxRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	length := rawdb.ReadLedgerLength(l.db)
	out := make([]types.TxRecord, 0, limit)
	for id := start; id < length && len(out) < limit; id++ {
		if rec := rawdb.ReadTxRecord(l.db, id); rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

// Length returns the number of appended transaction records.
func (l *LedgerState) Length() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return rawdb.ReadLedgerLength(l.db)
}

// appendRecords assigns gapless indices to the given records and stages them
// plus the updated ledger length into the batch. Timestamps must already be
// set by the caller. Callers hold the write lock and commit the batch
// afterwards.
func (l *LedgerState) appendRecords(batch tokendb.Batch, recs ...*types.TxRecord) []types.TxID {
	length := rawdb.ReadLedgerLength(l.db)
	ids := make([]types.TxID, 0, len(recs))
	for _, rec := range recs {
		rec.Index = length
		rawdb.WriteTxRecord(batch, rec)
		ids = append(ids, length)
		length++
	}
	rawdb.WriteLedgerLength(batch, length)
	return ids
}

// commit writes a fully validated batch. The store is contractually
// infallible; a failing write aborts the process rather than continuing with
// half-applied state.
func (l *LedgerState) commit(batch tokendb.Batch) {
	if err := batch.Write(); err != nil {
		logrus.WithError(err).Fatal("Failed to commit ledger batch")
	}
}
