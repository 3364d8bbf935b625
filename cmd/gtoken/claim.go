package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/types"
)

var accountIDFlag = &cli.StringFlag{
	Name:     "account-id",
	Usage:    "legacy account identifier (base58)",
	Required: true,
}

var commandFundClaim = &cli.Command{
	Name:      "fund-claim",
	Usage:     "park tokens under a legacy account identifier",
	ArgsUsage: " ",
	Description: `
Credit tokens to the pending bucket of a legacy account identifier. The
tokens enter the live supply only when the identifier's owner redeems them
with the claim command. Only the token owner may fund claims.
`,
	Flags:  []cli.Flag{callerFlag, accountIDFlag, amountFlag},
	Action: runFundClaim,
}

func runFundClaim(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	id, err := types.ParseAccountID(ctx.String(accountIDFlag.Name))
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

	if meta := l.Metadata(); !meta.TestMode && caller != meta.Owner {
		return fmt.Errorf("only the token owner may fund claims")
	}
	if err := l.MintToAccountID(id, amount); err != nil {
		return err
	}
	fmt.Printf("Claim bucket %s now holds %s\n", id, l.ClaimAmount(id))
	return nil
}

var claimSubFlag = &cli.StringFlag{
	Name:  "sub",
	Usage: "subaccount proving the identifier (hex, up to 32 bytes)",
}

var commandClaim = &cli.Command{
	Name:      "claim",
	Usage:     "redeem a legacy account identifier",
	ArgsUsage: " ",
	Description: `
Redeem the pending bucket of a legacy account identifier into the caller's
live balance. The caller address and subaccount must derive the identifier;
each bucket can be redeemed exactly once.
`,
	Flags:  []cli.Flag{callerFlag, accountIDFlag, claimSubFlag},
	Action: runClaim,
}

func runClaim(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	id, err := types.ParseAccountID(ctx.String(accountIDFlag.Name))
	if err != nil {
		return err
	}
	sub, err := parseSubaccount(ctx.String(claimSubFlag.Name))
	if err != nil {
		return err
	}

	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	txID, err := l.Claim(caller, id, sub)
	if err != nil {
		return err
	}
	fmt.Printf("Claim redeemed, mint recorded at index %d\n", txID)
	return nil
}
