// Package config holds the pattern and keyword configuration driving
// slip interpretation. Patterns are plain regular expression strings
// here; they are compiled once at startup, so a malformed pattern is a
// startup error, never a per-slip one.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExchangeKeywords maps an exchange identifier to the keywords that
// betray it in OCR text. Order in the Exchanges list is priority order:
// the first exchange with any keyword hit wins.
type ExchangeKeywords struct {
	ID       string   `yaml:"id"`
	Keywords []string `yaml:"keywords"`
}

// PatternConfig carries the ordered pattern lists per field category.
// Within each list, first match wins. Patterns capture fields by name
// using (?P<name>...) groups.
type PatternConfig struct {
	ConvertReceive      []string `yaml:"convert_receive"`
	ConvertInversePrice []string `yaml:"convert_inverse_price"` // 1 BASE = X QUOTE
	ConvertDirectPrice  []string `yaml:"convert_direct_price"`  // 1 QUOTE = Y BASE
	ConvertAmount       []string `yaml:"convert_amount"`
	Pair                []string `yaml:"pair"`
	Side                []string `yaml:"side"`
	Price               []string `yaml:"price"`
	Qty                 []string `yaml:"qty"`
	Fee                 []string `yaml:"fee"`
	Time                []string `yaml:"time"`
	Total               []string `yaml:"total"`
	TotalQuote          []string `yaml:"total_quote"`
	WalletDetector      []string `yaml:"wallet_detector"`
	WalletRow           []string `yaml:"wallet_row"`
}

// Config is the complete interpretation configuration
type Config struct {
	Exchanges []ExchangeKeywords `yaml:"exchanges"`
	Patterns  PatternConfig      `yaml:"patterns"`
}

const (
	num   = `[0-9][0-9,]*(?:\.[0-9]+)?`
	sym   = `[A-Z]{2,10}`
	quote = `USDT|USDC|BUSD|USD|THB`
)

// Default returns the built-in bilingual (English/Thai) pattern set.
// It covers the convert-slip and single-fill layouts of the supported
// exchanges plus their wallet pages.
func Default() *Config {
	return &Config{
		Exchanges: []ExchangeKeywords{
			{ID: "binance", Keywords: []string{"binance", "bnb smart chain"}},
			{ID: "bitkub", Keywords: []string{"bitkub", "บิทคับ"}},
			{ID: "okx", Keywords: []string{"okx", "okex"}},
			{ID: "bybit", Keywords: []string{"bybit"}},
		},
		Patterns: PatternConfig{
			ConvertReceive: []string{
				`(?:you\s+)?receive[d]?\s*:?\s*\+?(?P<qty>` + num + `)\s*(?P<base>` + sym + `)`,
				`ได้รับ\s*\+?(?P<qty>` + num + `)\s*(?P<base>` + sym + `)`,
				`(?m)^\s*\+\s*(?P<qty>` + num + `)\s+(?P<base>` + sym + `)\s*$`,
			},
			ConvertInversePrice: []string{
				`1\s*(?P<base>` + sym + `)\s*[=≈]\s*(?P<units>` + num + `)\s*(?P<quote>` + quote + `)`,
			},
			ConvertDirectPrice: []string{
				`1\s*(?P<quote>` + quote + `)\s*[=≈]\s*(?P<units>` + num + `)\s*(?P<base>` + sym + `)`,
			},
			ConvertAmount: []string{
				`(?:transaction\s+amount|spent|จำนวนเงิน)\s*:?\s*(?P<amount>` + num + `)\s*(?P<quote>` + sym + `)`,
			},
			Pair: []string{
				`(?P<pair>` + sym + `\s*/\s*` + sym + `)`,
				`(?:buy|sell|ซื้อ|ขาย)\s+(?P<base>` + sym + `)`,
			},
			Side: []string{
				`\b(?P<side>BUY|SELL)\b`,
				`(?P<side>ซื้อ|ขาย)`,
			},
			Price: []string{
				`(?:price|ราคา)\s*:?\s*(?P<price>` + num + `)`,
			},
			Qty: []string{
				`(?:filled|executed|qty|quantity|จำนวน)\s*:?\s*(?P<qty>` + num + `)`,
				`(?m)amount\s*:?\s*(?P<qty>` + num + `)\s*(?:` + sym + `)?\s*$`,
			},
			Fee: []string{
				`(?:fee|ค่าธรรมเนียม)\s*:?\s*(?P<fee>` + num + `)\s*(?P<fee_asset>` + sym + `)?`,
			},
			Time: []string{
				`(?P<time>\d{4}[-/.]\d{2}[-/.]\d{2}[ T]\d{2}:\d{2}(?::\d{2})?)`,
				`(?P<time>\d{2}[-/]\d{2}[-/]\d{4}\s+\d{2}:\d{2}(?::\d{2})?)`,
			},
			Total: []string{
				`(?:total|รวม)\s*:?\s*(?P<total>` + num + `)`,
			},
			TotalQuote: []string{
				`(?:total|รวม)[^\n]*?(?P<quote>` + quote + `)`,
			},
			WalletDetector: []string{
				`estimated\s+balance|total\s+balance|my\s+assets|portfolio|มูลค่าพอร์ต|สินทรัพย์ของฉัน`,
			},
			WalletRow: []string{
				`^(?P<asset>` + sym + `)\s+(?P<qty>` + num + `)(?:\s*≈?\s*\$?\s*(?P<usd>` + num + `))?\s*$`,
			},
		},
	}
}

// LoadFromFile loads a configuration from a YAML file.
// The file fully replaces the defaults; use Default() when no file is
// supplied.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if len(cfg.Exchanges) == 0 && len(cfg.Patterns.Pair) == 0 {
		return nil, fmt.Errorf("config file %s defines no exchanges or patterns", path)
	}
	return cfg, nil
}
