package types

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/tos-network/gtoken/common"
)

// SubaccountLength is the length of a subaccount discriminator in bytes.
const SubaccountLength = 32

// Subaccount disambiguates multiple accounts held by one owner. The all-zero
// subaccount and an absent subaccount denote the same account: constructors
// canonicalize nil to zero so store lookups, equality and duplicate matching
// all see a single representation.
type Subaccount [SubaccountLength]byte

// Account is the ledger's addressing unit.
type Account struct {
	Owner      common.Address
	Subaccount Subaccount
}

// NewAccount builds a canonical account from an owner and an optional
// subaccount.
func NewAccount(owner common.Address, sub *Subaccount) Account {
	acc := Account{Owner: owner}
	if sub != nil {
		acc.Subaccount = *sub
	}
	return acc
}

// String renders the account as owner hex, with the subaccount appended when
// it is not the default one.
func (a Account) String() string {
	if a.Subaccount == (Subaccount{}) {
		return a.Owner.Hex()
	}
	return fmt.Sprintf("%s.%x", a.Owner.Hex(), a.Subaccount)
}

// encodedAccountLength is the flat byte encoding length of an account.
const encodedAccountLength = common.AddressLength + SubaccountLength

// Bytes returns the flat owner||subaccount encoding used as a storage key.
func (a Account) Bytes() []byte {
	out := make([]byte, 0, encodedAccountLength)
	out = append(out, a.Owner.Bytes()...)
	out = append(out, a.Subaccount[:]...)
	return out
}

// AccountFromBytes decodes the flat owner||subaccount encoding.
func AccountFromBytes(b []byte) (Account, error) {
	if len(b) != encodedAccountLength {
		return Account{}, fmt.Errorf("invalid account encoding length %d, want %d", len(b), encodedAccountLength)
	}
	var acc Account
	acc.Owner = common.BytesToAddress(b[:common.AddressLength])
	copy(acc.Subaccount[:], b[common.AddressLength:])
	return acc, nil
}

// AccountIDLength is the length of a legacy account identifier in bytes.
const AccountIDLength = 32

// AccountID is the legacy account identifier scheme bridged by claims: a
// one-way digest of an owner and subaccount. Value can be parked under an
// AccountID before the owning identity exists on the ledger and redeemed
// once the owner proves the preimage.
type AccountID [AccountIDLength]byte

// accountIDDomain separates account identifier digests from any other use of
// the hash function.
var accountIDDomain = []byte("\x0agtoken-account-id")

// NewAccountID derives the legacy identifier of an owner/subaccount pair.
func NewAccountID(owner common.Address, sub *Subaccount) AccountID {
	acc := NewAccount(owner, sub)
	h := sha3.NewLegacyKeccak256()
	h.Write(accountIDDomain)
	h.Write(acc.Owner.Bytes())
	h.Write(acc.Subaccount[:])
	var id AccountID
	h.Sum(id[:0])
	return id
}

// String returns the base58 text form of the identifier.
func (id AccountID) String() string {
	return base58.Encode(id[:])
}

// ParseAccountID decodes the base58 text form of an identifier.
func ParseAccountID(s string) (AccountID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("invalid account id %q: %v", s, err)
	}
	if len(b) != AccountIDLength {
		return AccountID{}, fmt.Errorf("invalid account id length %d, want %d", len(b), AccountIDLength)
	}
	var id AccountID
	copy(id[:], b)
	return id, nil
}

// MemoLength is the length of a transfer memo in bytes.
const MemoLength = 32

// Memo is an opaque 32-byte tag attached to a transfer by its submitter. It
// participates in duplicate detection but has no ledger semantics.
type Memo [MemoLength]byte
