package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/decoder"
	"github.com/TaiZo1/cs2-win-prediction/internal/features"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/report"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var (
	extractSource string
	extractDate   string
	extractQuiet  bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <demo.dem>",
	Short: "Extract round features from a CS2 demo and store them",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSource, "source", "local", "source label stored with the match")
	extractCmd.Flags().StringVar(&extractDate, "date", "", "match date (YYYY-MM-DD), inferred from the filename when empty")
	extractCmd.Flags().BoolVarP(&extractQuiet, "quiet", "q", false, "skip the feature table printout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	demoPath := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, rows, err := extractOne(db, demoPath)
	if err != nil {
		return err
	}

	if !extractQuiet {
		report.PrintMatchSummary(os.Stdout, *summary)
		report.PrintRoundTable(os.Stdout, rows)
	}
	return nil
}

// storeMu serializes store access; batch runs extractOne from several
// goroutines against one connection.
var storeMu sync.Mutex

// extractOne decodes one demo, extracts its feature table and stores
// both. Already-stored demos are returned from the database untouched.
func extractOne(db *storage.DB, demoPath string) (*model.MatchSummary, []model.RoundFeatures, error) {
	cat := catalog.New()

	raw, err := decoder.Decode(demoPath, cat, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("decode demo: %w", err)
	}

	storeMu.Lock()
	defer storeMu.Unlock()

	exists, err := db.MatchExists(raw.MatchID)
	if err != nil {
		return nil, nil, fmt.Errorf("check match: %w", err)
	}
	if exists {
		logger.Info().Str("match", raw.MatchID[:12]).Msg("already stored, using cached features")
		summary, err := db.GetMatchByPrefix(raw.MatchID)
		if err != nil {
			return nil, nil, fmt.Errorf("load match: %w", err)
		}
		rows, err := db.GetRounds(raw.MatchID)
		if err != nil {
			return nil, nil, fmt.Errorf("load rounds: %w", err)
		}
		return summary, rows, nil
	}

	rows, err := features.ExtractMatch(raw, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("extract features: %w", err)
	}

	ctScore, tScore := finalScore(rows)
	summary := model.MatchSummary{
		MatchID:   raw.MatchID,
		MapName:   raw.MapName,
		MatchDate: matchDateFor(demoPath),
		Source:    extractSource,
		TickRate:  raw.TickRate,
		Rounds:    len(rows),
		CTScore:   ctScore,
		TScore:    tScore,
	}

	if err := db.InsertMatch(summary); err != nil {
		return nil, nil, fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertRoundFeatures(rows); err != nil {
		return nil, nil, fmt.Errorf("insert round features: %w", err)
	}
	return &summary, rows, nil
}

// finalScore sums round winners; the per-row scores are pre-round.
func finalScore(rows []model.RoundFeatures) (ct, t int) {
	for _, r := range rows {
		if r.RoundWinner == 1 {
			ct++
		} else {
			t++
		}
	}
	return
}

// matchDateFor returns the --date flag when set, then a leading
// YYYY-MM-DD filename prefix (the fetcher's naming), then today.
func matchDateFor(demoPath string) string {
	if extractDate != "" {
		return extractDate
	}
	base := filepath.Base(demoPath)
	if len(base) >= 10 && base[4] == '-' && base[7] == '-' {
		return base[:10]
	}
	return time.Now().Format("2006-01-02")
}
