// Package report renders feature tables and match summaries for the CLI
// and exports them to CSV and XLSX.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	id := s.MatchID
	if len(id) > 12 {
		id = id[:12]
	}
	fmt.Fprintf(w, "\nMap: %s  |  Date: %s  |  Source: %s  |  Score: CT %d / T %d  |  Match: %s\n\n",
		s.MapName, s.MatchDate, s.Source, s.CTScore, s.TScore, id)
}

// PrintMatchList prints one row per stored match.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("MATCH", "MAP", "DATE", "SOURCE", "ROUNDS", "CT", "T")
	for _, s := range matches {
		id := s.MatchID
		if len(id) > 12 {
			id = id[:12]
		}
		table.Append(
			id, s.MapName, s.MatchDate, s.Source,
			strconv.Itoa(s.Rounds),
			strconv.Itoa(s.CTScore),
			strconv.Itoa(s.TScore),
		)
	}
	table.Render()
}

// PrintRoundTable prints the per-round feature table. The full table has
// over fifty columns; the terminal view keeps the ones a human scans
// for, exports carry everything.
func PrintRoundTable(w io.Writer, rows []model.RoundFeatures) {
	table := newTable(w)
	table.Header(
		"RND", "SCORE", "CT$TOTAL", "T$TOTAL", "CT_EQUIP", "T_EQUIP",
		"CT_RIFLES", "T_RIFLES", "AWPS", "CT_UTIL", "T_UTIL", "FLAGS", "WIN",
	)
	for _, r := range rows {
		flags := ""
		if r.IsSideSwitch {
			flags += "S"
		}
		if r.IsOvertime {
			flags += "O"
		}
		winner := "T"
		if r.RoundWinner == 1 {
			winner = "CT"
		}
		table.Append(
			strconv.Itoa(r.RoundNumber),
			fmt.Sprintf("%d-%d", r.CTScore, r.TScore),
			strconv.Itoa(r.CTMoneyTotal),
			strconv.Itoa(r.TMoneyTotal),
			strconv.Itoa(r.CTEquipValue),
			strconv.Itoa(r.TEquipValue),
			strconv.Itoa(r.CTRifles),
			strconv.Itoa(r.TRifles),
			fmt.Sprintf("%d/%d", r.CTAWPs, r.TAWPs),
			strconv.Itoa(r.CTUtilityValue),
			strconv.Itoa(r.TUtilityValue),
			flags,
			winner,
		)
	}
	table.Render()
}

// PrintOverview prints store-wide totals for the summary command.
func PrintOverview(w io.Writer, o *storage.Overview) {
	fmt.Fprintf(w, "\nMatches: %d  |  Rounds: %d\n", o.Matches, o.Rounds)
	if o.Rounds > 0 {
		ctPct := 100 * float64(o.CTRoundWins) / float64(o.Rounds)
		fmt.Fprintf(w, "Round wins: CT %d (%.1f%%)  /  T %d (%.1f%%)\n\n",
			o.CTRoundWins, ctPct, o.TRoundWins, 100-ctPct)
	}
	if len(o.Maps) == 0 {
		return
	}
	table := newTable(w)
	table.Header("MAP", "MATCHES")
	for _, mc := range o.Maps {
		table.Append(mc.MapName, strconv.Itoa(mc.Matches))
	}
	table.Render()
}
