package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core"
	"github.com/tos-network/gtoken/core/types"
)

var (
	toFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "recipient account (0xowner or 0xowner.subhex)",
		Required: true,
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "amount in base units",
		Required: true,
	}
	fromSubFlag = &cli.StringFlag{
		Name:  "from-sub",
		Usage: "sender subaccount (hex, up to 32 bytes)",
	}
	feeFlag = &cli.StringFlag{
		Name:  "fee",
		Usage: "expected fee; the transfer fails if it does not match the configured fee",
	}
	memoFlag = &cli.StringFlag{
		Name:  "memo",
		Usage: "opaque memo (hex, up to 32 bytes)",
	}
	createdAtFlag = &cli.Uint64Flag{
		Name:  "created-at",
		Usage: "client creation time in unix nanoseconds, enables duplicate detection",
	}
	includeFeeFlag = &cli.BoolFlag{
		Name:  "include-fee",
		Usage: "treat the amount as gross: the fee is taken out of it",
	}
)

var commandTransfer = &cli.Command{
	Name:      "transfer",
	Usage:     "move tokens to another account",
	ArgsUsage: " ",
	Description: `
Move tokens from the caller's account. The configured fee is charged on top
of the amount unless --include-fee is given, in which case the recipient
receives the amount minus the fee.

Supplying --created-at enables duplicate detection: resubmitting the same
transfer within the dedup window is rejected with the original index.
`,
	Flags: []cli.Flag{
		callerFlag, toFlag, amountFlag,
		fromSubFlag, feeFlag, memoFlag, createdAtFlag, includeFeeFlag,
	},
	Action: runTransfer,
}

func runTransfer(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	args, err := transferArgs(ctx)
	if err != nil {
		return err
	}

	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	var id types.TxID
	if ctx.Bool(includeFeeFlag.Name) {
		id, err = l.TransferIncludeFee(caller, args)
	} else {
		id, err = l.Transfer(caller, args)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Transfer recorded at index %d\n", id)
	return nil
}

func transferArgs(ctx *cli.Context) (core.TransferArgs, error) {
	to, err := parseAccount(ctx.String(toFlag.Name))
	if err != nil {
		return core.TransferArgs{}, err
	}
	amount, err := types.AmountFromString(ctx.String(amountFlag.Name))
	if err != nil {
		return core.TransferArgs{}, err
	}
	fromSub, err := parseSubaccount(ctx.String(fromSubFlag.Name))
	if err != nil {
		return core.TransferArgs{}, err
	}
	memo, err := parseMemo(ctx.String(memoFlag.Name))
	if err != nil {
		return core.TransferArgs{}, err
	}

	args := core.TransferArgs{
		FromSubaccount: fromSub,
		To:             to,
		Amount:         amount,
		Memo:           memo,
	}
	if s := ctx.String(feeFlag.Name); s != "" {
		fee, err := types.AmountFromString(s)
		if err != nil {
			return core.TransferArgs{}, err
		}
		args.Fee = &fee
	}
	if ctx.IsSet(createdAtFlag.Name) {
		createdAt := ctx.Uint64(createdAtFlag.Name)
		args.CreatedAtTime = &createdAt
	}
	return args, nil
}

var batchLegsFlag = &cli.StringSliceFlag{
	Name:     "leg",
	Usage:    "one account:amount leg, repeatable",
	Required: true,
}

var commandBatchTransfer = &cli.Command{
	Name:      "batch-transfer",
	Usage:     "move tokens to several accounts atomically",
	ArgsUsage: " ",
	Description: `
Execute several transfers as one atomic operation: either every leg applies
or none does. The configured fee is charged once per leg.

Example:
    gtoken batch-transfer --caller 0x... --leg 0xabc...:100 --leg 0xdef...:200
`,
	Flags:  []cli.Flag{callerFlag, fromSubFlag, batchLegsFlag},
	Action: runBatchTransfer,
}

func runBatchTransfer(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	fromSub, err := parseSubaccount(ctx.String(fromSubFlag.Name))
	if err != nil {
		return err
	}
	var legs []core.BatchTransferArgs
	for _, s := range ctx.StringSlice(batchLegsFlag.Name) {
		leg, err := parseBatchLeg(s)
		if err != nil {
			return err
		}
		legs = append(legs, leg)
	}

	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := l.BatchTransfer(caller, fromSub, legs)
	if err != nil {
		return err
	}
	fmt.Printf("Batch of %d transfers recorded at indices %d..%d\n", len(ids), ids[0], ids[len(ids)-1])
	return nil
}
