// Package params holds the protocol constants of the gtoken ledger.
package params

import (
	"time"

	"github.com/tos-network/gtoken/common"
)

const (
	// TxWindow is the maximum age of an acceptable transfer timestamp. A
	// transfer whose created_at_time is older than this window relative to
	// ledger time is rejected as too old, and the duplicate scan over the
	// transaction log never has to look back further than this.
	TxWindow = uint64(24 * time.Hour / time.Nanosecond)

	// PermittedDrift is the maximum allowed future skew of a transfer
	// timestamp relative to ledger time.
	PermittedDrift = uint64(2 * time.Minute / time.Nanosecond)

	// MaxFeeRatioBPS caps the auction share of a collected fee. The ratio is
	// expressed in basis points of the fee routed to the auction escrow.
	MaxFeeRatioBPS uint16 = 10000

	// DefaultDecimals is the token precision used when the host supplies no
	// metadata of its own.
	DefaultDecimals uint8 = 8
)

// AuctionOwner is the reserved owner address of the fee escrow drained by the
// external bidding subsystem. No key derives it; it can only be credited by
// fee splitting and debited by auction disbursement.
var AuctionOwner = common.HexToAddress("0x000000000000000000000000000000000a0c710e")
