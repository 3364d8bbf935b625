package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/types"
)

var commandMint = &cli.Command{
	Name:      "mint",
	Usage:     "create tokens on an account",
	ArgsUsage: " ",
	Description: `
Mint new tokens to the target account, growing the total supply. Only the
token owner may mint, unless the ledger was created in test mode.
`,
	Flags:  []cli.Flag{callerFlag, toFlag, amountFlag},
	Action: runMint,
}

func runMint(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
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

	if meta := l.Metadata(); !meta.TestMode && caller != meta.Owner {
		return errors.New("only the token owner may mint")
	}
	id, err := l.Mint(caller, to, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Mint recorded at index %d\n", id)
	return nil
}

var burnFromSubFlag = &cli.StringFlag{
	Name:  "from-sub",
	Usage: "subaccount to burn from (hex, up to 32 bytes)",
}

var commandBurn = &cli.Command{
	Name:      "burn",
	Usage:     "destroy tokens from the caller's account",
	ArgsUsage: " ",
	Flags:     []cli.Flag{callerFlag, amountFlag, burnFromSubFlag},
	Action:    runBurn,
}

func runBurn(ctx *cli.Context) error {
	caller, err := common.ParseAddress(ctx.String(callerFlag.Name))
	if err != nil {
		return err
	}
	sub, err := parseSubaccount(ctx.String(burnFromSubFlag.Name))
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

	id, err := l.Burn(caller, types.NewAccount(caller, sub), amount)
	if err != nil {
		return err
	}
	fmt.Printf("Burn recorded at index %d\n", id)
	return nil
}
