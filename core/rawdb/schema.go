// Package rawdb owns the flat key-value schema of the token ledger and the
// low-level accessors that read and write it. Higher layers never touch raw
// database keys.
package rawdb

import (
	"encoding/binary"

	"github.com/tos-network/gtoken/core/types"
)

// The flat database schema. Every entry of the ledger lives under one of
// these prefixes.
var (
	balancePrefix   = []byte("b") // balancePrefix + account -> amount
	txRecordPrefix  = []byte("t") // txRecordPrefix + index (8B BE) -> tx record
	claimPrefix     = []byte("c") // claimPrefix + account id -> pending amount
	allowancePrefix = []byte("a") // allowancePrefix + owner account + spender account -> amount

	ledgerLengthKey = []byte("n") // number of appended tx records
	totalSupplyKey  = []byte("s") // minted minus burned
	metadataKey     = []byte("M") // encoded token metadata
)

// balanceKey = balancePrefix + account.
func balanceKey(account types.Account) []byte {
	return append(balancePrefix, account.Bytes()...)
}

// txRecordKey = txRecordPrefix + index (uint64 big endian).
func txRecordKey(index types.TxID) []byte {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	return append(txRecordPrefix, idx[:]...)
}

// claimKey = claimPrefix + account id.
func claimKey(id types.AccountID) []byte {
	return append(claimPrefix, id[:]...)
}

// allowanceKey = allowancePrefix + owner account + spender account.
func allowanceKey(owner, spender types.Account) []byte {
	key := append(allowancePrefix, owner.Bytes()...)
	return append(key, spender.Bytes()...)
}
