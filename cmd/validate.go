package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
	"github.com/TaiZo1/cs2-win-prediction/internal/validate"
)

var (
	validateJSON  bool
	validateOut   string
	validateSkip  []string
	validateMaxIs int
)

var validateCmd = &cobra.Command{
	Use:   "validate [match-prefix]",
	Short: "Check stored feature tables against the match format rules",
	Long:  "Re-derive the competitive format invariants (economy bounds, score progression, side-switch resets) from stored feature rows and report violations. With no argument every stored match is checked.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit the report as JSON")
	validateCmd.Flags().StringVarP(&validateOut, "out", "o", "", "also write the JSON report to this file")
	validateCmd.Flags().StringSliceVar(&validateSkip, "skip", nil, "check keys to skip (e.g. pistol_round)")
	validateCmd.Flags().IntVar(&validateMaxIs, "max-issues", 0, "offending rows listed per check (default 5)")
}

func runValidate(cmd *cobra.Command, args []string) error {
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
		fmt.Fprintln(os.Stdout, "No feature rows stored yet. Run 'cswin extract <demo.dem>' first.")
		return nil
	}

	rep := validate.Run(rows, validate.Config{
		Skip:      validateSkip,
		MaxIssues: validateMaxIs,
	})

	if validateOut != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(validateOut, data, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", validateOut)
	}

	if validateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	validate.PrintReport(os.Stdout, rep)

	if rep.Summary.Errors > 0 {
		return fmt.Errorf("%d validation error(s)", rep.Summary.Errors)
	}
	return nil
}
