package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/core/types"
)

func TestBatchTransfer(t *testing.T) {
	// Two legs at fee 50 apiece, full fee to the recipient.
	l, _ := newTestLedger(t, amt(50), john, 0)
	seedBalance(t, l, alice, amt(1_000))

	ids, err := l.BatchTransfer(aliceAddr, nil, []BatchTransferArgs{
		{Receiver: bob, Amount: amt(100)},
		{Receiver: xtc, Amount: amt(200)},
	})
	require.NoError(t, err)
	require.Equal(t, []types.TxID{0, 1}, ids)

	assert.Equal(t, amt(600), l.BalanceOf(alice))
	assert.Equal(t, amt(100), l.BalanceOf(bob))
	assert.Equal(t, amt(200), l.BalanceOf(xtc))
	assert.Equal(t, amt(100), l.BalanceOf(john))
	requireConserved(t, l)

	// One record per leg, in submission order.
	first := l.GetTransaction(0)
	second := l.GetTransaction(1)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, bob, first.To)
	assert.Equal(t, xtc, second.To)
	assert.Equal(t, types.OpTransfer, first.Operation)
}

func TestBatchTransferAtomicity(t *testing.T) {
	l, _ := newTestLedger(t, amt(50), john, 0)
	seedBalance(t, l, alice, amt(1_000))
	seedBalance(t, l, bob, amt(77))

	// The third leg overdraws; nothing from the first two may stick, and the
	// reported balance is the pre-batch one, not the staged remainder.
	_, err := l.BatchTransfer(aliceAddr, nil, []BatchTransferArgs{
		{Receiver: bob, Amount: amt(100)},
		{Receiver: xtc, Amount: amt(200)},
		{Receiver: john, Amount: amt(900)},
	})
	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, amt(1_000), insufficient.Balance)

	assert.Equal(t, amt(1_000), l.BalanceOf(alice))
	assert.Equal(t, amt(77), l.BalanceOf(bob))
	assert.True(t, l.BalanceOf(xtc).IsZero())
	assert.True(t, l.BalanceOf(john).IsZero())
	assert.Equal(t, uint64(0), l.Length())
	requireConserved(t, l)
}

func TestBatchTransferSelfLeg(t *testing.T) {
	// A leg back to the sender nets out against later legs through the
	// shared staged sheet.
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(300))

	_, err := l.BatchTransfer(aliceAddr, nil, []BatchTransferArgs{
		{Receiver: alice, Amount: amt(300)},
		{Receiver: bob, Amount: amt(300)},
	})
	require.NoError(t, err)
	assert.True(t, l.BalanceOf(alice).IsZero())
	assert.Equal(t, amt(300), l.BalanceOf(bob))
	requireConserved(t, l)
}

func TestBatchTransferEmpty(t *testing.T) {
	l, _ := newTestLedger(t, amt(50), john, 0)
	seedBalance(t, l, alice, amt(1_000))

	ids, err := l.BatchTransfer(aliceAddr, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, amt(1_000), l.BalanceOf(alice))
	assert.Equal(t, uint64(0), l.Length())
}
