package rawdb

import (
	"encoding/binary"

	"github.com/sirupsen/logrus"

	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/tokendb"
)

// The store is contractually infallible within one invocation; a failing
// read or write means the host broke that contract and the process must not
// continue with half-applied state.
func crit(msg string, err error) {
	logrus.WithError(err).Fatal(msg)
}

// ReadBalance retrieves the stored balance of an account, zero if absent.
func ReadBalance(db tokendb.KeyValueReader, account types.Account) types.Amount {
	data, _ := db.Get(balanceKey(account))
	if len(data) != 16 {
		return types.Amount{}
	}
	var raw [16]byte
	copy(raw[:], data)
	return types.AmountFromBytes16(raw)
}

// WriteBalance stores the balance of an account. Zero balances are deleted
// rather than stored, so the balance table only ever holds funded accounts.
func WriteBalance(db tokendb.KeyValueWriter, account types.Account, amount types.Amount) {
	if amount.IsZero() {
		if err := db.Delete(balanceKey(account)); err != nil {
			crit("Failed to delete balance", err)
		}
		return
	}
	raw := amount.Bytes16()
	if err := db.Put(balanceKey(account), raw[:]); err != nil {
		crit("Failed to store balance", err)
	}
}

// ForEachBalance invokes fn for every stored balance entry. Iteration order
// is the flat account encoding order.
func ForEachBalance(db tokendb.Iteratee, fn func(types.Account, types.Amount) bool) {
	it := db.NewIterator(balancePrefix, nil)
	defer it.Release()
	for it.Next() {
		account, err := types.AccountFromBytes(it.Key()[len(balancePrefix):])
		if err != nil {
			crit("Corrupt balance key", err)
		}
		var raw [16]byte
		copy(raw[:], it.Value())
		if !fn(account, types.AmountFromBytes16(raw)) {
			return
		}
	}
	if err := it.Error(); err != nil {
		crit("Balance iteration failed", err)
	}
}

// ReadLedgerLength retrieves the number of appended transaction records.
func ReadLedgerLength(db tokendb.KeyValueReader) uint64 {
	data, _ := db.Get(ledgerLengthKey)
	if len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

// WriteLedgerLength stores the number of appended transaction records.
func WriteLedgerLength(db tokendb.KeyValueWriter, n uint64) {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], n)
	if err := db.Put(ledgerLengthKey, raw[:]); err != nil {
		crit("Failed to store ledger length", err)
	}
}

// ReadTxRecord retrieves the transaction record at the given index, nil if no
// such record exists.
func ReadTxRecord(db tokendb.KeyValueReader, index types.TxID) *types.TxRecord {
	data, _ := db.Get(txRecordKey(index))
	if len(data) == 0 {
		return nil
	}
	rec, err := decodeTxRecord(data)
	if err != nil {
		crit("Corrupt tx record", err)
	}
	return rec
}

// WriteTxRecord stores a transaction record under its index.
func WriteTxRecord(db tokendb.KeyValueWriter, rec *types.TxRecord) {
	if err := db.Put(txRecordKey(rec.Index), encodeTxRecord(rec)); err != nil {
		crit("Failed to store tx record", err)
	}
}

// ReadTotalSupply retrieves the current circulating supply.
func ReadTotalSupply(db tokendb.KeyValueReader) types.Amount {
	data, _ := db.Get(totalSupplyKey)
	if len(data) != 16 {
		return types.Amount{}
	}
	var raw [16]byte
	copy(raw[:], data)
	return types.AmountFromBytes16(raw)
}

// WriteTotalSupply stores the current circulating supply.
func WriteTotalSupply(db tokendb.KeyValueWriter, supply types.Amount) {
	raw := supply.Bytes16()
	if err := db.Put(totalSupplyKey, raw[:]); err != nil {
		crit("Failed to store total supply", err)
	}
}

// ReadClaim retrieves the pending claim amount for a legacy account
// identifier, zero if absent.
func ReadClaim(db tokendb.KeyValueReader, id types.AccountID) types.Amount {
	data, _ := db.Get(claimKey(id))
	if len(data) != 16 {
		return types.Amount{}
	}
	var raw [16]byte
	copy(raw[:], data)
	return types.AmountFromBytes16(raw)
}

// HasClaim reports whether a pending claim exists for the identifier.
func HasClaim(db tokendb.KeyValueReader, id types.AccountID) bool {
	has, _ := db.Has(claimKey(id))
	return has
}

// WriteClaim stores the pending claim amount for a legacy account identifier.
func WriteClaim(db tokendb.KeyValueWriter, id types.AccountID, amount types.Amount) {
	raw := amount.Bytes16()
	if err := db.Put(claimKey(id), raw[:]); err != nil {
		crit("Failed to store claim", err)
	}
}

// DeleteClaim removes the pending claim entry for a legacy account
// identifier.
func DeleteClaim(db tokendb.KeyValueWriter, id types.AccountID) {
	if err := db.Delete(claimKey(id)); err != nil {
		crit("Failed to delete claim", err)
	}
}

// ReadAllowance retrieves the allowance granted by owner to spender, zero if
// absent.
func ReadAllowance(db tokendb.KeyValueReader, owner, spender types.Account) types.Amount {
	data, _ := db.Get(allowanceKey(owner, spender))
	if len(data) != 16 {
		return types.Amount{}
	}
	var raw [16]byte
	copy(raw[:], data)
	return types.AmountFromBytes16(raw)
}

// WriteAllowance stores the allowance granted by owner to spender, removing
// the entry when the allowance is zero.
func WriteAllowance(db tokendb.KeyValueWriter, owner, spender types.Account, amount types.Amount) {
	if amount.IsZero() {
		if err := db.Delete(allowanceKey(owner, spender)); err != nil {
			crit("Failed to delete allowance", err)
		}
		return
	}
	raw := amount.Bytes16()
	if err := db.Put(allowanceKey(owner, spender), raw[:]); err != nil {
		crit("Failed to store allowance", err)
	}
}

// ReadMetadata retrieves the persisted token metadata, nil if the ledger has
// not been initialized.
func ReadMetadata(db tokendb.KeyValueReader) *types.Metadata {
	data, _ := db.Get(metadataKey)
	if len(data) == 0 {
		return nil
	}
	meta, err := decodeMetadata(data)
	if err != nil {
		crit("Corrupt metadata", err)
	}
	return meta
}

// WriteMetadata stores the token metadata.
func WriteMetadata(db tokendb.KeyValueWriter, meta *types.Metadata) {
	if err := db.Put(metadataKey, encodeMetadata(meta)); err != nil {
		crit("Failed to store metadata", err)
	}
}
