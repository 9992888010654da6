package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var batchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Extract round features from every demo in a directory",
	Long:  "Decode every .dem file in a directory and store the extracted feature tables. Demos that fail to decode are skipped and reported at the end.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 2, "demos decoded in parallel")
}

func runBatch(cmd *cobra.Command, args []string) error {
	demos, err := filepath.Glob(filepath.Join(args[0], "*.dem"))
	if err != nil {
		return fmt.Errorf("scan directory: %w", err)
	}
	if len(demos) == 0 {
		fmt.Fprintf(os.Stdout, "No .dem files in %s\n", args[0])
		return nil
	}
	sort.Strings(demos)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	done, failed := processDemos(demos, batchWorkers, os.Stdout, func(path string) (int, error) {
		_, rows, err := extractOne(db, path)
		if err != nil {
			logger.Error().Err(err).Str("demo", filepath.Base(path)).Msg("demo skipped")
			return 0, err
		}
		return len(rows), nil
	})

	fmt.Fprintf(os.Stdout, "\nStored %d of %d demos.\n", done, len(demos))
	if len(failed) > 0 {
		fmt.Fprintln(os.Stdout, "Failed:")
		for _, name := range failed {
			fmt.Fprintf(os.Stdout, "  * %s\n", name)
		}
	}
	return nil
}

// processDemos runs handle over every demo with at most workers in
// flight. Decoding dominates the runtime, so demos run in parallel; a
// demo whose handler errors is added to failed and its siblings proceed.
func processDemos(demos []string, workers int, out io.Writer, handle func(path string) (rounds int, err error)) (done int, failed []string) {
	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for _, demoPath := range demos {
		demoPath := demoPath
		g.Go(func() error {
			rounds, err := handle(demoPath)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, filepath.Base(demoPath))
				return nil
			}
			done++
			fmt.Fprintf(out, "[%d/%d] %s: %d rounds\n",
				done+len(failed), len(demos), filepath.Base(demoPath), rounds)
			return nil
		})
	}
	g.Wait()
	return done, failed
}
