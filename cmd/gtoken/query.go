package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/core/types"
)

var accountFlag = &cli.StringFlag{
	Name:     "account",
	Usage:    "account to inspect (0xowner or 0xowner.subhex)",
	Required: true,
}

var commandBalance = &cli.Command{
	Name:      "balance",
	Usage:     "print an account balance",
	ArgsUsage: " ",
	Flags:     []cli.Flag{accountFlag},
	Action:    runBalance,
}

func runBalance(ctx *cli.Context) error {
	account, err := parseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}
	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println(l.BalanceOf(account))
	return nil
}

var allowanceSpenderFlag = &cli.StringFlag{
	Name:     "spender",
	Usage:    "spender account",
	Required: true,
}

var commandAllowance = &cli.Command{
	Name:      "allowance",
	Usage:     "print a remaining allowance",
	ArgsUsage: " ",
	Flags:     []cli.Flag{accountFlag, allowanceSpenderFlag},
	Action:    runAllowance,
}

func runAllowance(ctx *cli.Context) error {
	owner, err := parseAccount(ctx.String(accountFlag.Name))
	if err != nil {
		return err
	}
	spender, err := parseAccount(ctx.String(allowanceSpenderFlag.Name))
	if err != nil {
		return err
	}
	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println(l.Allowance(owner, spender))
	return nil
}

var commandSupply = &cli.Command{
	Name:   "supply",
	Usage:  "print the total supply",
	Action: runSupply,
}

func runSupply(ctx *cli.Context) error {
	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println(l.TotalSupply())
	return nil
}

var (
	historyStartFlag = &cli.Uint64Flag{
		Name:  "start",
		Usage: "first transaction index to print",
	}
	historyLimitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "maximum number of records",
		Value: 20,
	}
)

type outputTxRecord struct {
	Index     types.TxID `json:"index"`
	Operation string     `json:"operation"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	Caller    string     `json:"caller"`
	Amount    string     `json:"amount"`
	Fee       string     `json:"fee"`
	Memo      string     `json:"memo,omitempty"`
	Timestamp uint64     `json:"timestamp"`
}

func newOutputTxRecord(rec types.TxRecord) outputTxRecord {
	out := outputTxRecord{
		Index:     rec.Index,
		Operation: rec.Operation.String(),
		From:      rec.From.String(),
		To:        rec.To.String(),
		Caller:    rec.Caller.String(),
		Amount:    rec.Amount.String(),
		Fee:       rec.Fee.String(),
		Timestamp: rec.Timestamp,
	}
	if rec.Memo != nil {
		out.Memo = fmt.Sprintf("%x", *rec.Memo)
	}
	return out
}

var commandHistory = &cli.Command{
	Name:      "history",
	Usage:     "print transaction records",
	ArgsUsage: " ",
	Flags:     []cli.Flag{historyStartFlag, historyLimitFlag, jsonFlag},
	Action:    runHistory,
}

func runHistory(ctx *cli.Context) error {
	l, db, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	recs := l.GetTransactions(ctx.Uint64(historyStartFlag.Name), ctx.Int(historyLimitFlag.Name))
	if ctx.Bool(jsonFlag.Name) {
		out := make([]outputTxRecord, 0, len(recs))
		for _, rec := range recs {
			out = append(out, newOutputTxRecord(rec))
		}
		enc, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(enc))
		return nil
	}
	for _, rec := range recs {
		out := newOutputTxRecord(rec)
		fmt.Printf("#%d %-12s %s -> %s amount=%s fee=%s ts=%d\n",
			out.Index, out.Operation, out.From, out.To, out.Amount, out.Fee, out.Timestamp)
	}
	return nil
}
