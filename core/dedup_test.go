package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/params"
)

func TestTransferDeduplication(t *testing.T) {
	l, clock := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now()
	args := TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created}

	id, err := l.Transfer(aliceAddr, args)
	require.NoError(t, err)

	// Resubmitting the identical transfer within the window applies nothing
	// and names the original record.
	clock.Advance(uint64(1_000_000))
	_, err = l.Transfer(aliceAddr, args)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, id, dup.DuplicateOf)
	assert.Equal(t, amt(900), l.BalanceOf(alice))
	assert.Equal(t, amt(100), l.BalanceOf(bob))
	assert.Equal(t, uint64(1), l.Length())

	// Any differing field makes it a distinct transfer.
	differing := args
	differing.Amount = amt(101)
	_, err = l.Transfer(aliceAddr, differing)
	assert.NoError(t, err)

	memo := types.Memo{42}
	withMemo := args
	withMemo.Memo = &memo
	_, err = l.Transfer(aliceAddr, withMemo)
	assert.NoError(t, err)
}

func TestTransferDeduplicationRecordTimestamp(t *testing.T) {
	// A deduplicated transfer is recorded under its created_at_time, not the
	// ledger time of its arrival; the resubmission must still match it.
	l, clock := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now()
	clock.Advance(uint64(5_000_000_000))
	args := TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created}

	id, err := l.Transfer(aliceAddr, args)
	require.NoError(t, err)
	rec := l.GetTransaction(id)
	require.NotNil(t, rec)
	assert.Equal(t, created, rec.Timestamp)

	_, err = l.Transfer(aliceAddr, args)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestTransferDedupFeeWildcard(t *testing.T) {
	l, clock := newTestLedger(t, amt(50), john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now()
	fee := amt(50)
	_, err := l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), Fee: &fee, CreatedAtTime: &created})
	require.NoError(t, err)

	// An omitted fee matches any recorded fee.
	_, err = l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created})
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestTransferWithoutCreatedAtTimeNeverDeduplicates(t *testing.T) {
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	args := TransferArgs{To: bob, Amount: amt(100)}
	_, err := l.Transfer(aliceAddr, args)
	require.NoError(t, err)
	_, err = l.Transfer(aliceAddr, args)
	require.NoError(t, err)
	assert.Equal(t, amt(800), l.BalanceOf(alice))
	assert.Equal(t, uint64(2), l.Length())
}

func TestTransferTooOld(t *testing.T) {
	l, clock := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now()
	clock.Advance(params.TxWindow + 1)
	_, err := l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created})
	var tooOld *TooOldError
	require.ErrorAs(t, err, &tooOld)
	assert.Equal(t, params.TxWindow, tooOld.AllowedWindowNanos)
	assert.Equal(t, amt(1_000), l.BalanceOf(alice))

	// Exactly at the window edge is still accepted.
	edge := clock.Now() - params.TxWindow
	_, err = l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &edge})
	assert.NoError(t, err)
}

func TestTransferCreatedInFuture(t *testing.T) {
	l, clock := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now() + params.PermittedDrift + 1
	_, err := l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created})
	var future *CreatedInFutureError
	require.ErrorAs(t, err, &future)
	assert.Equal(t, clock.Now(), future.LedgerTime)

	// Drift up to the permitted bound is accepted.
	created = clock.Now() + params.PermittedDrift
	_, err = l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created})
	assert.NoError(t, err)
}

func TestTransferDedupWindowExpiry(t *testing.T) {
	// Once every matching record has aged out of the window the scan stops
	// early, but the resubmission itself is then too old anyway. A fresh
	// created_at_time for the same payload is a new transfer.
	l, clock := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	created := clock.Now()
	_, err := l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &created})
	require.NoError(t, err)

	clock.Advance(params.TxWindow + 1)
	fresh := clock.Now()
	_, err = l.Transfer(aliceAddr, TransferArgs{To: bob, Amount: amt(100), CreatedAtTime: &fresh})
	require.NoError(t, err)
	assert.Equal(t, amt(800), l.BalanceOf(alice))
}
