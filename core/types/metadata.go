package types

import "github.com/tos-network/gtoken/common"

// Metadata is the persisted token configuration. Fee and FeeTo are the live
// fee policy: they are consulted at transfer time, not frozen into pending
// transfers, so changing them affects every subsequent operation.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
	Owner    common.Address

	// Fee is the flat fee charged on transfers and approvals.
	Fee Amount
	// FeeTo receives the owner share of every collected fee.
	FeeTo Account
	// FeeRatioBPS is the basis-point share of each fee routed to the auction
	// escrow; the fee recipient gets the rest, including any rounding
	// remainder.
	FeeRatioBPS uint16
	// TestMode allows unprivileged mints, mirroring test token deployments.
	TestMode bool
}

// FeeInfo returns the current flat fee and its recipient.
func (m *Metadata) FeeInfo() (Amount, Account) {
	return m.Fee, m.FeeTo
}
