package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/report"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <match-prefix>",
	Short: "Show a stored match's feature table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(args[0])
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("match not found: %s", args[0])
	}

	rows, err := db.GetRounds(match.MatchID)
	if err != nil {
		return fmt.Errorf("load rounds: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintRoundTable(os.Stdout, rows)
	return nil
}
