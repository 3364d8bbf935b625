// Package config loads the node configuration file and validates it before
// any command touches the database.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/tos-network/gtoken/common"
	"github.com/tos-network/gtoken/core/types"
	"github.com/tos-network/gtoken/params"
)

// TokenConfig describes the token created by `gtoken init`.
type TokenConfig struct {
	Name          string
	Symbol        string
	Decimals      uint8
	Owner         string
	InitialSupply string `mapstructure:"initial_supply"`
	TestMode      bool   `mapstructure:"test_mode"`
}

// FeeConfig describes the transfer fee policy.
type FeeConfig struct {
	Amount   string
	To       string
	RatioBPS uint16 `mapstructure:"ratio_bps"`
}

// Config is the root of the configuration file.
type Config struct {
	// DataDir holds the ledger database. Empty selects an in-memory store,
	// useful only for experiments since nothing survives the process.
	DataDir string `mapstructure:"data_dir"`

	Token TokenConfig
	Fee   FeeConfig

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`
}

// Load reads gtoken.yaml from the given directory (or the working directory
// and ./config when dir is empty) and validates it.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("gtoken")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetDefault("data_dir", "gtoken-data")
	v.SetDefault("log_level", "info")
	v.SetDefault("token.decimals", params.DefaultDecimals)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) check() error {
	if c.Token.Name == "" {
		return errors.New("token.name cannot be empty")
	}
	if c.Token.Symbol == "" {
		return errors.New("token.symbol cannot be empty")
	}
	if _, err := common.ParseAddress(c.Token.Owner); err != nil {
		return fmt.Errorf("token.owner: %v", err)
	}
	if c.Token.InitialSupply != "" {
		if _, err := types.AmountFromString(c.Token.InitialSupply); err != nil {
			return fmt.Errorf("token.initial_supply: %v", err)
		}
	}
	if c.Fee.Amount != "" {
		if _, err := types.AmountFromString(c.Fee.Amount); err != nil {
			return fmt.Errorf("fee.amount: %v", err)
		}
	}
	if c.Fee.To != "" {
		if _, err := common.ParseAddress(c.Fee.To); err != nil {
			return fmt.Errorf("fee.to: %v", err)
		}
	}
	if c.Fee.RatioBPS > params.MaxFeeRatioBPS {
		return fmt.Errorf("fee.ratio_bps %d exceeds %d", c.Fee.RatioBPS, params.MaxFeeRatioBPS)
	}
	return nil
}

// Metadata assembles the persisted token metadata from the configuration.
func (c *Config) Metadata() *types.Metadata {
	owner, _ := common.ParseAddress(c.Token.Owner)
	meta := &types.Metadata{
		Name:        c.Token.Name,
		Symbol:      c.Token.Symbol,
		Decimals:    c.Token.Decimals,
		Owner:       owner,
		FeeRatioBPS: c.Fee.RatioBPS,
		TestMode:    c.Token.TestMode,
		FeeTo:       types.NewAccount(owner, nil),
	}
	if c.Fee.Amount != "" {
		meta.Fee, _ = types.AmountFromString(c.Fee.Amount)
	}
	if c.Fee.To != "" {
		feeTo, _ := common.ParseAddress(c.Fee.To)
		meta.FeeTo = types.NewAccount(feeTo, nil)
	}
	return meta
}

// InitialSupply returns the configured initial supply, zero when unset.
func (c *Config) InitialSupply() types.Amount {
	if c.Token.InitialSupply == "" {
		return types.Amount{}
	}
	supply, _ := types.AmountFromString(c.Token.InitialSupply)
	return supply
}
