// gtoken is the command line host of the token ledger: it owns the database
// directory, applies the configured fee policy, and exposes every ledger
// operation as a subcommand. Access control is intentionally thin here: the
// caller address is an argument, as on any single-operator deployment.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tos-network/gtoken/config"
	"github.com/tos-network/gtoken/core"
	"github.com/tos-network/gtoken/tokendb"
	"github.com/tos-network/gtoken/tokendb/leveldb"
	"github.com/tos-network/gtoken/tokendb/memorydb"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""

var app *cli.App

func init() {
	app = cli.NewApp()
	app.Name = "gtoken"
	app.Usage = "a fungible token ledger"
	app.Version = version(gitCommit)
	app.Flags = []cli.Flag{
		configDirFlag,
		dataDirFlag,
		verbosityFlag,
	}
	app.Before = setupLogging
	app.Commands = []*cli.Command{
		commandInit,
		commandInfo,
		commandTransfer,
		commandBatchTransfer,
		commandApprove,
		commandTransferFrom,
		commandMint,
		commandBurn,
		commandFundClaim,
		commandClaim,
		commandBalance,
		commandAllowance,
		commandSupply,
		commandHistory,
	}
}

// Commonly used command line flags.
var (
	configDirFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "directory containing gtoken.yaml",
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "ledger database directory (overrides the config file)",
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "logging level (debug, info, warn, error)",
	}
	callerFlag = &cli.StringFlag{
		Name:     "caller",
		Usage:    "address submitting the operation",
		Required: true,
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "output JSON instead of human-readable format",
	}
)

func version(commit string) string {
	if len(commit) >= 8 {
		return "1.0.0-" + commit[:8]
	}
	return "1.0.0"
}

func setupLogging(ctx *cli.Context) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if v := ctx.String(verbosityFlag.Name); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
	}
	return nil
}

// loadConfig reads the configuration file and applies command line
// overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configDirFlag.Name))
	if err != nil {
		return nil, err
	}
	if dir := ctx.String(dataDirFlag.Name); dir != "" {
		cfg.DataDir = dir
	}
	if v := ctx.String(verbosityFlag.Name); v == "" && cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		logrus.SetLevel(level)
	}
	return cfg, nil
}

// openStore opens the configured database backend.
func openStore(cfg *config.Config) (tokendb.KeyValueStore, error) {
	if cfg.DataDir == "" {
		logrus.Warn("No data directory configured, using a volatile in-memory store")
		return memorydb.New(), nil
	}
	return leveldb.New(cfg.DataDir)
}

// openLedger opens the store and the already initialized ledger on it.
func openLedger(ctx *cli.Context) (*core.LedgerState, tokendb.KeyValueStore, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	db, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	l, err := core.Open(db, nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, db, nil
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
