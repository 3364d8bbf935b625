package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core"
	"github.com/tos-network/gtoken/core/types"
)

// parseAccount decodes "0xowner" or "0xowner.subaccounthex" notation.
func parseAccount(s string) (types.Account, error) {
	ownerPart, subPart, hasSub := strings.Cut(s, ".")
	owner, err := common.ParseAddress(ownerPart)
	if err != nil {
		return types.Account{}, err
	}
	if !hasSub {
		return types.NewAccount(owner, nil), nil
	}
	sub, err := parseSubaccount(subPart)
	if err != nil {
		return types.Account{}, err
	}
	return types.NewAccount(owner, sub), nil
}

// parseSubaccount decodes a hex subaccount of up to 32 bytes, right-padded
// with zeros. Empty input means the default subaccount.
func parseSubaccount(s string) (*types.Subaccount, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid subaccount %q: %v", s, err)
	}
	if len(b) > types.SubaccountLength {
		return nil, fmt.Errorf("subaccount %q longer than %d bytes", s, types.SubaccountLength)
	}
	var sub types.Subaccount
	copy(sub[:], b)
	return &sub, nil
}

// parseMemo decodes a hex memo of up to 32 bytes, right-padded with zeros.
func parseMemo(s string) (*types.Memo, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid memo %q: %v", s, err)
	}
	if len(b) > types.MemoLength {
		return nil, fmt.Errorf("memo %q longer than %d bytes", s, types.MemoLength)
	}
	var memo types.Memo
	copy(memo[:], b)
	return &memo, nil
}

// parseBatchLeg decodes one "account:amount" batch transfer leg.
func parseBatchLeg(s string) (core.BatchTransferArgs, error) {
	accountPart, amountPart, ok := strings.Cut(s, ":")
	if !ok {
		return core.BatchTransferArgs{}, fmt.Errorf("invalid leg %q, want account:amount", s)
	}
	receiver, err := parseAccount(accountPart)
	if err != nil {
		return core.BatchTransferArgs{}, err
	}
	amount, err := types.AmountFromString(amountPart)
	if err != nil {
		return core.BatchTransferArgs{}, err
	}
	return core.BatchTransferArgs{Receiver: receiver, Amount: amount}, nil
}
