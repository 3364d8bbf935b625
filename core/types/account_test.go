package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/common"
)

func TestNilSubaccountIsZeroSubaccount(t *testing.T) {
	owner := common.HexToAddress("0x01")
	var zero Subaccount

	require.Equal(t, NewAccount(owner, nil), NewAccount(owner, &zero))
	require.Equal(t, NewAccountID(owner, nil), NewAccountID(owner, &zero))
}

func TestAccountBytesRoundTrip(t *testing.T) {
	sub := Subaccount{1, 2, 3}
	acc := NewAccount(common.HexToAddress("0xabcdef"), &sub)

	dec, err := AccountFromBytes(acc.Bytes())
	require.NoError(t, err)
	require.Equal(t, acc, dec)

	_, err = AccountFromBytes(acc.Bytes()[:10])
	require.Error(t, err)
}

func TestAccountIDDerivationIsStable(t *testing.T) {
	owner := common.HexToAddress("0x42")
	sub := Subaccount{7}

	id1 := NewAccountID(owner, &sub)
	id2 := NewAccountID(owner, &sub)
	require.Equal(t, id1, id2)

	// Different subaccount, different identifier.
	other := Subaccount{8}
	require.NotEqual(t, id1, NewAccountID(owner, &other))
	require.NotEqual(t, id1, NewAccountID(common.HexToAddress("0x43"), &sub))
}

func TestAccountIDTextRoundTrip(t *testing.T) {
	id := NewAccountID(common.HexToAddress("0x99"), nil)

	parsed, err := ParseAccountID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = ParseAccountID("0OIl") // invalid base58 alphabet
	require.Error(t, err)
	_, err = ParseAccountID("2g") // too short
	require.Error(t, err)
}

func TestAccountString(t *testing.T) {
	owner := common.HexToAddress("0x01")
	require.Equal(t, owner.Hex(), NewAccount(owner, nil).String())

	sub := Subaccount{0xff}
	require.Contains(t, NewAccount(owner, &sub).String(), ".")
}
