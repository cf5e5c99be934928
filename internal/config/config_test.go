package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotEmpty(t, cfg.Exchanges)
	assert.Equal(t, "binance", cfg.Exchanges[0].ID)
	assert.NotEmpty(t, cfg.Patterns.Pair)
	assert.NotEmpty(t, cfg.Patterns.Side)
	assert.NotEmpty(t, cfg.Patterns.ConvertReceive)
	assert.NotEmpty(t, cfg.Patterns.WalletRow)
}

func TestLoadFromFile(t *testing.T) {
	content := `
exchanges:
  - id: kraken
    keywords: ["kraken"]
patterns:
  pair:
    - '(?P<pair>[A-Z]+/[A-Z]+)'
  side:
    - '\b(?P<side>BUY|SELL)\b'
`
	path := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, cfg.Exchanges, 1)
	assert.Equal(t, "kraken", cfg.Exchanges[0].ID)
	assert.Len(t, cfg.Patterns.Pair, 1)
	// A file replaces the defaults entirely
	assert.Empty(t, cfg.Patterns.ConvertReceive)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadFromFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "defines no exchanges or patterns")
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exchanges: [unclosed\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "parse config file")
}
