package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prasongk/slipledger/internal/usecase/accounting"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Show the current position for every traded pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, closeLedger, err := openLedger()
		if err != nil {
			return err
		}
		defer closeLedger()

		svc := accounting.NewService(ledger)
		positions, err := svc.Positions(cmd.Context())
		if err != nil {
			return err
		}

		if len(positions) == 0 {
			fmt.Println("no positions yet")
			return nil
		}
		for _, pos := range positions {
			fmt.Printf("%-14s qty=%-18s avg_cost=%-18s updated=%s\n",
				pos.Pair, pos.Qty.String(), pos.AvgCost.String(),
				pos.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}
