package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/core"
)

var commandInit = &cli.Command{
	Name:  "init",
	Usage: "create the token ledger in the data directory",
	Description: `
Create a new token ledger from the [token] and [fee] sections of the
configuration file. The initial supply, when configured, is minted to the
token owner as transaction zero. Fails if the data directory already holds a
ledger.
`,
	Action: runInit,
}

func runInit(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	l, err := core.Init(db, cfg.Metadata(), cfg.InitialSupply(), nil)
	if err != nil {
		return err
	}
	meta := l.Metadata()
	fmt.Printf("Created ledger for %s (%s) with supply %s\n", meta.Name, meta.Symbol, l.TotalSupply())
	return nil
}

type outputInfo struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	Owner       string `json:"owner"`
	Fee         string `json:"fee"`
	FeeTo       string `json:"feeTo"`
	FeeRatioBPS uint16 `json:"feeRatioBPS"`
	TotalSupply string `json:"totalSupply"`
	History     uint64 `json:"historyLength"`
}

var commandInfo = &cli.Command{
	Name:   "info",
	Usage:  "print token metadata and supply",
	Flags:  []cli.Flag{jsonFlag},
	Action: runInfo,
}

func runInfo(ctx *cli.Context) error {
	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	meta := l.Metadata()
	out := outputInfo{
		Name:        meta.Name,
		Symbol:      meta.Symbol,
		Decimals:    meta.Decimals,
		Owner:       meta.Owner.Hex(),
		Fee:         meta.Fee.String(),
		FeeTo:       meta.FeeTo.String(),
		FeeRatioBPS: meta.FeeRatioBPS,
		TotalSupply: l.TotalSupply().String(),
		History:     l.Length(),
	}
	if ctx.Bool(jsonFlag.Name) {
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	}
	fmt.Printf("Token:        %s (%s), %d decimals\n", out.Name, out.Symbol, out.Decimals)
	fmt.Printf("Owner:        %s\n", out.Owner)
	fmt.Printf("Fee:          %s to %s (auction share %d bps)\n", out.Fee, out.FeeTo, out.FeeRatioBPS)
	fmt.Printf("Total supply: %s\n", out.TotalSupply)
	fmt.Printf("Transactions: %d\n", out.History)
	return nil
}
