package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/report"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export [match-prefix]",
	Short: "Export feature tables to CSV or XLSX",
	Long:  "Write stored feature rows as a training-ready table. With no argument every stored match is exported in one file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default features.<format>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unknown format %q (want csv or xlsx)", exportFormat)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	var rows []model.RoundFeatures
	if len(args) == 1 {
		match, err := db.GetMatchByPrefix(args[0])
		if err != nil {
			return fmt.Errorf("query match: %w", err)
		}
		if match == nil {
			return fmt.Errorf("match not found: %s", args[0])
		}
		rows, err = db.GetRounds(match.MatchID)
		if err != nil {
			return fmt.Errorf("load rounds: %w", err)
		}
	} else {
		rows, err = db.GetAllRounds()
		if err != nil {
			return fmt.Errorf("load rounds: %w", err)
		}
	}
	if len(rows) == 0 {
		return fmt.Errorf("no feature rows to export")
	}

	outPath := exportOut
	if outPath == "" {
		outPath = "features." + format
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	switch format {
	case "csv":
		err = report.WriteCSV(f, rows)
	case "xlsx":
		err = report.WriteXLSX(f, rows)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %d rounds to %s\n", len(rows), outPath)
	return nil
}
