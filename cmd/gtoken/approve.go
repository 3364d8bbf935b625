package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core"
	"github.com/tos-network/gtoken/core/types"
)

var spenderFlag = &cli.StringFlag{
	Name:     "spender",
	Usage:    "account allowed to spend from the caller's account",
	Required: true,
}

var commandApprove = &cli.Command{
	Name:      "approve",
	Usage:     "grant a spending allowance",
	ArgsUsage: " ",
	Description: `
Set the spender's allowance over the caller's account to the given amount,
replacing any earlier figure. The configured fee is charged from the caller.
A zero amount revokes the allowance.
`,
	Flags:  []cli.Flag{callerFlag, spenderFlag, amountFlag, fromSubFlag},
	Action: runApprove,
}

func runApprove(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	spender, err := parseAccount(ctx.String(spenderFlag.Name))
	if err != nil {
		return err
	}
	amount, err := types.AmountFromString(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}
	fromSub, err := parseSubaccount(ctx.String(fromSubFlag.Name))
	if err != nil {
		return err
	}

	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := l.Approve(caller, core.ApproveArgs{
		FromSubaccount: fromSub,
		Spender:        spender,
		Amount:         amount,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Approval recorded at index %d\n", id)
	return nil
}

var fromFlag = &cli.StringFlag{
	Name:     "from",
	Usage:    "account to debit (0xowner or 0xowner.subhex)",
	Required: true,
}

var commandTransferFrom = &cli.Command{
	Name:      "transfer-from",
	Usage:     "spend a granted allowance",
	ArgsUsage: " ",
	Description: `
Move tokens out of another account on the strength of an allowance its owner
granted to the caller. The amount plus the configured fee is debited from the
source account and counts against the allowance.
`,
	Flags:  []cli.Flag{callerFlag, fromFlag, toFlag, amountFlag},
	Action: runTransferFrom,
}

func runTransferFrom(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	from, err := parseAccount(ctx.String(fromFlag.Name))
	if err != nil {
		return err
	}
	to, err := parseAccount(ctx.String(toFlag.Name))
	if err != nil {
		return err
	}
	amount, err := types.AmountFromString(ctx.String(amountFlag.Name))
	if err != nil {
		return err
	}

	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := l.TransferFrom(caller, core.TransferFromArgs{From: from, To: to, Amount: amount})
	if err != nil {
		return err
	}
	fmt.Printf("Transfer recorded at index %d\n", id)
	return nil
}
