package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/hltv"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var (
	fetchEventID int
	fetchOutDir  string
	fetchMax     int
	fetchIngest  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download an HLTV event's demos",
	Long:  "Scrape an HLTV event's results page, download every published GOTV demo and optionally extract features straight into the database.",
	Args:  cobra.NoArgs,
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchEventID, "event", 0, "HLTV event id (required)")
	fetchCmd.Flags().StringVar(&fetchOutDir, "out", "demos", "directory for downloaded demos")
	fetchCmd.Flags().IntVar(&fetchMax, "max", 0, "stop after this many demos (0 = all)")
	fetchCmd.Flags().BoolVar(&fetchIngest, "ingest", false, "extract features after each download")
	fetchCmd.MarkFlagRequired("event")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := hltv.ConfigFromEnv()
	if err != nil {
		return err
	}
	client := hltv.NewClient(cfg, logger)
	ctx := cmd.Context()

	if err := os.MkdirAll(fetchOutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var db *storage.DB
	if fetchIngest {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
		db, err = storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
	}

	ids, err := client.MatchIDs(ctx, fetchEventID)
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if fetchMax > 0 && len(ids) > fetchMax {
		ids = ids[:fetchMax]
	}
	fmt.Fprintf(os.Stdout, "Event %d: %d matches\n", fetchEventID, len(ids))

	var downloaded, failed int
	for i, id := range ids {
		if i > 0 {
			if err := client.Pause(ctx); err != nil {
				return err
			}
		}

		page, err := client.MatchInfo(ctx, id)
		if err != nil {
			logger.Warn().Err(err).Str("match", id).Msg("match skipped")
			failed++
			continue
		}
		// The download is a separate request and gets its own pause.
		if err := client.Pause(ctx); err != nil {
			return err
		}
		demoPath, err := client.DownloadDemo(ctx, page, fetchOutDir)
		if err != nil {
			logger.Warn().Err(err).Str("match", id).Msg("download failed")
			failed++
			continue
		}
		downloaded++
		fmt.Fprintf(os.Stdout, "[%d/%d] %s\n", i+1, len(ids), filepath.Base(demoPath))

		if fetchIngest {
			if _, rows, err := extractOne(db, demoPath); err != nil {
				logger.Warn().Err(err).Str("demo", filepath.Base(demoPath)).Msg("extraction failed")
			} else {
				fmt.Fprintf(os.Stdout, "        stored %d rounds\n", len(rows))
			}
		}
	}

	fmt.Fprintf(os.Stdout, "\nDownloaded %d demos, %d failed or unavailable.\n", downloaded, failed)
	return nil
}
