package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/prasongk/slipledger/internal/domain"
	"github.com/prasongk/slipledger/internal/usecase/accounting"
	"github.com/prasongk/slipledger/internal/usecase/classify"
	"github.com/prasongk/slipledger/internal/usecase/interpret"
)

var (
	patchJSON string
	commit    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Interpret an OCR text dump and optionally record it",
	Long: `Parse reads OCR text from a file (or stdin with "-"), classifies the
exchange, and interprets the text as a trade slip or wallet page.

Without --commit the result is only previewed. Field corrections can be
supplied as a JSON object, e.g. --patch '{"price":"0.123"}'.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&patchJSON, "patch", "", "JSON field corrections merged onto the parsed trade")
	parseCmd.Flags().BoolVar(&commit, "commit", false, "record the result to the ledger")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	text, srcID, err := readInput(args[0])
	if err != nil {
		return err
	}

	cfg, rules, err := loadRules()
	if err != nil {
		return err
	}

	exchange := classify.Exchange(cfg.Exchanges, text)
	slog.Debug("classified exchange", "exchange", exchange)

	result, err := interpret.Interpret(rules, text)
	if errors.Is(err, domain.ErrNoMatch) {
		fmt.Println("could not read a trade or wallet page from this text")
		fmt.Println("try again with a clearer image, or another page")
		return nil
	}
	if err != nil {
		return err
	}

	switch result.Kind {
	case interpret.KindWallet:
		result.Wallet.SrcImageID = srcID
		return handleWallet(cmd, result.Wallet)
	default:
		result.Trade.Exchange = exchange
		result.Trade.SrcImageID = srcID
		return handleTrade(cmd, result.Trade)
	}
}

func handleTrade(cmd *cobra.Command, trade *domain.TradeRecord) error {
	if patchJSON != "" {
		patch := map[string]string{}
		if err := json.Unmarshal([]byte(patchJSON), &patch); err != nil {
			return fmt.Errorf("parse patch: %w", err)
		}
		if err := trade.Merge(patch); err != nil {
			return fmt.Errorf("apply patch: %w", err)
		}
	}

	fmt.Println(previewTrade(trade))

	if !commit {
		fmt.Println("\ndry run; use --commit to record")
		return nil
	}

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	svc := accounting.NewService(ledger)
	out, err := svc.Record(cmd.Context(), trade)

	var incomplete *domain.IncompleteTradeError
	if errors.As(err, &incomplete) {
		fmt.Printf("\nnot recorded: missing %s\n", strings.Join(incomplete.Missing, ", "))
		fmt.Println(`supply them with --patch, e.g. --patch '{"price":"0.123"}'`)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(out.String())
	return nil
}

func handleWallet(cmd *cobra.Command, snapshot *domain.WalletSnapshot) error {
	fmt.Println("wallet page:")
	for _, entry := range snapshot.Entries {
		line := fmt.Sprintf("  %s: %s", entry.Asset, entry.Qty.String())
		if entry.USD.Valid {
			line += fmt.Sprintf(" ($%s)", entry.USD.Decimal.String())
		}
		fmt.Println(line)
	}

	if !commit {
		fmt.Println("\ndry run; use --commit to record the snapshot")
		return nil
	}

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	svc := accounting.NewService(ledger)
	if err := svc.RecordSnapshot(cmd.Context(), snapshot); err != nil {
		return err
	}
	fmt.Println("\nsnapshot recorded")
	return nil
}

// previewTrade renders the fields the interpreter managed to read
func previewTrade(trade *domain.TradeRecord) string {
	var lines []string
	add := func(name, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("  %s: %s", name, value))
		}
	}

	add("exchange", trade.Exchange)
	add("pair", trade.Pair)
	add("side", string(trade.Side))
	add("price", fmtDecimal(trade.Price))
	add("qty", fmtDecimal(trade.Qty))
	add("fee", fmtDecimal(trade.Fee))
	if trade.QuoteAmount.Valid {
		add("spent", strings.TrimSpace(fmtDecimal(trade.QuoteAmount)+" "+trade.QuoteAsset))
	}
	add("time", trade.Time)

	if len(lines) == 0 {
		return "parsed trade: (no fields)"
	}
	return "parsed trade:\n" + strings.Join(lines, "\n")
}

func fmtDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// readInput returns the OCR text and a provenance ID for it
func readInput(arg string) (string, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", arg, err)
	}
	return string(data), filepath.Base(arg), nil
}
