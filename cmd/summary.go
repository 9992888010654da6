package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/report"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show store-wide totals",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	overview, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("query overview: %w", err)
	}
	if overview.Matches == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet.")
		return nil
	}
	report.PrintOverview(os.Stdout, overview)
	return nil
}
