package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tos-network/gtoken/core/types"
)

const sampleConfig = `
data_dir: /var/lib/gtoken

token:
  name: Test Token
  symbol: TST
  decimals: 8
  owner: "0x00000000000000000000000000000000000000a1"
  initial_supply: "1000000"
  test_mode: true

fee:
  amount: "50"
  to: "0x00000000000000000000000000000000000000c3"
  ratio_bps: 2500

log_level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "gtoken.yaml"), []byte(content), 0o644)
	require.NoError(t, err)
	return dir
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/gtoken", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint16(2500), cfg.Fee.RatioBPS)

	meta := cfg.Metadata()
	assert.Equal(t, "Test Token", meta.Name)
	assert.Equal(t, "TST", meta.Symbol)
	assert.Equal(t, uint8(8), meta.Decimals)
	assert.True(t, meta.TestMode)
	assert.Equal(t, types.NewAmount(50), meta.Fee)
	assert.Equal(t, uint16(2500), meta.FeeRatioBPS)
	assert.Equal(t, types.NewAmount(1_000_000), cfg.InitialSupply())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
token:
  name: Minimal
  symbol: MIN
  owner: "0x00000000000000000000000000000000000000a1"
`))
	require.NoError(t, err)

	assert.Equal(t, "gtoken-data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)

	meta := cfg.Metadata()
	assert.Equal(t, uint8(8), meta.Decimals)
	assert.True(t, meta.Fee.IsZero())
	// The fee recipient defaults to the owner.
	assert.Equal(t, meta.Owner, meta.FeeTo.Owner)
	assert.True(t, cfg.InitialSupply().IsZero())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing name":  "token:\n  symbol: X\n  owner: \"0x00000000000000000000000000000000000000a1\"\n",
		"bad owner":     "token:\n  name: X\n  symbol: X\n  owner: nonsense\n",
		"bad supply":    "token:\n  name: X\n  symbol: X\n  owner: \"0x00000000000000000000000000000000000000a1\"\n  initial_supply: \"-5\"\n",
		"ratio too big": "token:\n  name: X\n  symbol: X\n  owner: \"0x00000000000000000000000000000000000000a1\"\nfee:\n  ratio_bps: 10001\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
