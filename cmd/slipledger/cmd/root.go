package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prasongk/slipledger/internal/adapter/repository/csvstore"
	"github.com/prasongk/slipledger/internal/adapter/repository/memory"
	"github.com/prasongk/slipledger/internal/adapter/repository/postgres"
	"github.com/prasongk/slipledger/internal/config"
	"github.com/prasongk/slipledger/internal/domain"
	"github.com/prasongk/slipledger/internal/usecase/interpret"
)

var (
	cfgFile   string
	storeKind string
	dataDir   string
)

var rootCmd = &cobra.Command{
	Use:   "slipledger",
	Short: "Turn OCR text from exchange trade slips into a position ledger",
	Long: `Slipledger reads noisy OCR text captured from cryptocurrency-exchange
trade confirmations and wallet pages, extracts structured trade or
balance records, and maintains a per-pair position ledger with
weighted-average cost basis and realized P&L.

Storage backends:
  csv       local flat files under the data directory (default)
  postgres  PostgreSQL, configured via DB_CONN_STR or DB_* variables
  memory    in-process only, for dry runs`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "pattern config file (YAML); built-in defaults when empty")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "csv", "ledger backend: csv, postgres or memory")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "data directory for the csv backend")
}

func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadRules loads the pattern configuration and compiles it
func loadRules() (*config.Config, *interpret.Rules, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}
	rules, err := interpret.NewRules(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, rules, nil
}

// openLedger opens the selected storage backend
func openLedger() (domain.Ledger, func(), error) {
	switch storeKind {
	case "csv":
		store, err := csvstore.New(dataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case "postgres":
		db, err := postgres.NewDB(dbConnString())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		return postgres.NewLedger(db), func() { db.Close() }, nil
	case "memory":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (expected csv, postgres or memory)", storeKind)
	}
}

// dbConnString builds the postgres connection string from DB_CONN_STR,
// or from individual DB_* variables (Docker friendly).
func dbConnString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "slipledger")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
