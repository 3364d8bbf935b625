package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/rawdb"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/params"
	"github.com/tos-network/gtoken/tokendb/memorydb"
)

var (
	aliceAddr = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bobAddr   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	johnAddr  = common.HexToAddress("0x00000000000000000000000000000000000000c3")
	xtcAddr   = common.HexToAddress("0x00000000000000000000000000000000000000d4")

	alice = types.NewAccount(aliceAddr, nil)
	bob   = types.NewAccount(bobAddr, nil)
	john  = types.NewAccount(johnAddr, nil)
	xtc   = types.NewAccount(xtcAddr, nil)
)

// testStart is an arbitrary ledger epoch well past the dedup window, so the
// window math never saturates at zero in tests.
const testStart = uint64(1_700_000_000_000_000_000)

// manualClock is a settable Clock for deterministic timestamps.
type manualClock struct {
	t uint64
}

func (c *manualClock) Now() uint64 {
	return c.t
}

func (c *manualClock) Advance(d uint64) {
	c.t += d
}

func amt(n uint64) types.Amount {
	return types.NewAmount(n)
}

// newTestLedger initializes an in-memory ledger with zero supply and the
// given fee policy, returning the handle and its clock.
func newTestLedger(t testing.TB, fee types.Amount, feeTo types.Account, ratioBPS uint16) (*LedgerState, *manualClock) {
	t.Helper()
	clock := &manualClock{t: testStart}
	meta := &types.Metadata{
		Name:        "Test Token",
		Symbol:      "TST",
		Decimals:    params.DefaultDecimals,
		Owner:       johnAddr,
		Fee:         fee,
		FeeTo:       feeTo,
		FeeRatioBPS: ratioBPS,
	}
	l, err := Init(memorydb.New(), meta, types.Amount{}, clock.Now)
	require.NoError(t, err)
	return l, clock
}

// seedBalance plants a balance directly into the store, bypassing the mint
// path so tests control record indices from zero.
func seedBalance(t testing.TB, l *LedgerState, account types.Account, amount types.Amount) {
	t.Helper()
	rawdb.WriteBalance(l.db, account, amount)
	supply, ok := rawdb.ReadTotalSupply(l.db).Add(amount)
	require.True(t, ok)
	rawdb.WriteTotalSupply(l.db, supply)
}

// requireConserved asserts the conservation invariant: the sum of all stored
// balances equals total minted minus total burned.
func requireConserved(t testing.TB, l *LedgerState) {
	t.Helper()
	require.Equal(t, l.TotalSupply(), l.balances.Sum(), "balance sum diverged from total supply")
}

// requireNoZeroEntries asserts no stored balance entry carries a zero value.
func requireNoZeroEntries(t testing.TB, l *LedgerState) {
	t.Helper()
	l.balances.ForEach(func(account types.Account, amount types.Amount) bool {
		require.False(t, amount.IsZero(), "zero-value entry stored for %s", account)
		return true
	})
}

func TestInitAndReopen(t *testing.T) {
	db := memorydb.New()
	clock := &manualClock{t: testStart}
	meta := &types.Metadata{
		Name:     "Test Token",
		Symbol:   "TST",
		Decimals: params.DefaultDecimals,
		Owner:    johnAddr,
		Fee:      amt(10),
		FeeTo:    john,
	}
	l, err := Init(db, meta, amt(1_000_000), clock.Now)
	require.NoError(t, err)

	// Initial supply is minted to the owner as record zero.
	assert.Equal(t, amt(1_000_000), l.BalanceOf(john))
	assert.Equal(t, amt(1_000_000), l.TotalSupply())
	assert.Equal(t, uint64(1), l.Length())

	rec := l.GetTransaction(0)
	require.NotNil(t, rec)
	assert.Equal(t, types.OpMint, rec.Operation)
	assert.Equal(t, amt(1_000_000), rec.Amount)

	_, err = Init(db, meta, amt(1), clock.Now)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	reopened, err := Open(db, clock.Now)
	require.NoError(t, err)
	got := reopened.Metadata()
	assert.Equal(t, *meta, got)
	assert.Equal(t, amt(1_000_000), reopened.BalanceOf(john))
}

func TestOpenUninitialized(t *testing.T) {
	_, err := Open(memorydb.New(), nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestFeePolicyUpdates(t *testing.T) {
	l, _ := newTestLedger(t, amt(10), john, 0)

	l.SetFee(amt(25))
	l.SetFeeTo(xtc)
	l.SetFeeRatio(2_500)

	got := l.Metadata()
	assert.Equal(t, amt(25), got.Fee)
	assert.Equal(t, xtc, got.FeeTo)
	assert.Equal(t, uint16(2_500), got.FeeRatioBPS)

	// Updates survive a reopen.
	reopened, err := Open(l.db, nil)
	require.NoError(t, err)
	assert.Equal(t, got, reopened.Metadata())

	// Ratios above 100% clamp.
	l.SetFeeRatio(20_000)
	assert.Equal(t, params.MaxFeeRatioBPS, l.Metadata().FeeRatioBPS)
}

func TestGetTransactionsPaging(t *testing.T) {
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	for i := 0; i < 5; i++ {
		_, err := l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(10)})
		require.NoError(t, err)
	}

	page := l.GetTransactions(1, 3)
	require.Len(t, page, 3)
	assert.Equal(t, types.TxID(1), page[0].Index)
	assert.Equal(t, types.TxID(3), page[2].Index)

	// Paging past the tail truncates instead of failing.
	tail := l.GetTransactions(4, 10)
	require.Len(t, tail, 1)
	assert.Equal(t, types.TxID(4), tail[0].Index)

	assert.Empty(t, l.GetTransactions(99, 10))
	assert.Nil(t, l.GetTransaction(99))
}
