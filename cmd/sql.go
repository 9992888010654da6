package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the feature database",
	Long: `Run an arbitrary SQL query against the feature database and print results as a table.

Schema overview:
  matches(match_id, map_name, match_date, source, tickrate, rounds, ct_score, t_score)
  round_features(match_id, round_number, map_name, ct_score, t_score,
    ct_money_total, t_money_total, ct_cash, t_cash, ct_cash_avg, t_cash_avg,
    ct_awps, t_awps, ct_rifles, t_rifles, ct_smokes, t_smokes,
    ct_equip_value, t_equip_value, ct_won_streak, ct_lost_streak,
    is_side_switch, is_overtime, round_winner, ...)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)
	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()

	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
