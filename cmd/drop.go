package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var dropForce bool

var dropCmd = &cobra.Command{
	Use:   "drop [match-prefix]",
	Short: "Delete one match or the whole feature database",
	Long:  "With a match prefix, delete that match and its feature rows. Without one, permanently delete the SQLite database file; re-extract your demos afterwards to rebuild.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropMatch(args[0])
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropMatch(prefix string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		return fmt.Errorf("match not found: %s", prefix)
	}
	if err := db.DeleteMatch(match.MatchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted match %s (%s).\n", match.MatchID[:12], match.MapName)
	return nil
}
