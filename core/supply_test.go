package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/core/types"
)

func TestMint(t *testing.T) {
	l, _ := newTestLedger(t, amt(50), john, 0)

	id, err := l.Mint(johnAddr, alice, amt(10_000))
	require.NoError(t, err)
	assert.Equal(t, types.TxID(0), id)
	assert.Equal(t, amt(10_000), l.BalanceOf(alice))
	assert.Equal(t, amt(10_000), l.TotalSupply())
	requireConserved(t, l)

	// Minting is fee-free.
	assert.True(t, l.BalanceOf(john).IsZero())

	rec := l.GetTransaction(id)
	require.NotNil(t, rec)
	assert.Equal(t, types.OpMint, rec.Operation)
	assert.Equal(t, alice, rec.To)
	assert.Equal(t, john, rec.Caller)
	assert.True(t, rec.Fee.IsZero())
}

func TestMintOverflow(t *testing.T) {
	l, _ := newTestLedger(t, types.Amount{}, john, 0)

	_, err := l.Mint(johnAddr, alice, types.MaxAmount)
	require.NoError(t, err)
	_, err = l.Mint(johnAddr, alice, amt(1))
	assert.ErrorIs(t, err, ErrAmountOverflow)
	assert.Equal(t, types.MaxAmount, l.BalanceOf(alice))
	assert.Equal(t, uint64(1), l.Length())
}

func TestBurn(t *testing.T) {
	l, _ := newTestLedger(t, amt(50), john, 0)
	seedBalance(t, l, alice, amt(1_000))

	id, err := l.Burn(aliceAddr, alice, amt(500))
	require.NoError(t, err)
	assert.Equal(t, amt(500), l.BalanceOf(alice))
	assert.Equal(t, amt(500), l.TotalSupply())
	requireConserved(t, l)

	rec := l.GetTransaction(id)
	require.NotNil(t, rec)
	assert.Equal(t, types.OpBurn, rec.Operation)
	assert.Equal(t, alice, rec.From)
	assert.Equal(t, alice, rec.To)
	assert.True(t, rec.Fee.IsZero())
}

func TestBurnInsufficientFunds(t *testing.T) {
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	_, err := l.Burn(aliceAddr, alice, amt(2_000))
	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, amt(1_000), insufficient.Balance)
	assert.Equal(t, amt(1_000), l.BalanceOf(alice))

	// Burning from an account that holds nothing reports a zero balance.
	_, err = l.Burn(bobAddr, bob, amt(1))
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Balance.IsZero())
}

func TestBurnToZeroDeletesEntry(t *testing.T) {
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	_, err := l.Burn(aliceAddr, alice, amt(1_000))
	require.NoError(t, err)
	assert.True(t, l.BalanceOf(alice).IsZero())
	assert.True(t, l.TotalSupply().IsZero())
	requireNoZeroEntries(t, l)
}

func TestBurnZeroAmount(t *testing.T) {
	// A zero burn moves nothing but is still recorded.
	l, _ := newTestLedger(t, types.Amount{}, john, 0)
	seedBalance(t, l, alice, amt(1_000))

	id, err := l.Burn(aliceAddr, alice, types.Amount{})
	require.NoError(t, err)
	assert.Equal(t, amt(1_000), l.BalanceOf(alice))
	rec := l.GetTransaction(id)
	require.NotNil(t, rec)
	assert.True(t, rec.Amount.IsZero())
}
