package validate

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintReport renders the validation report for terminal consumption.
func PrintReport(w io.Writer, rep *Report) {
	fmt.Fprintf(w, "\nRounds analyzed: %d", rep.TotalRounds)
	if rep.TotalMatches > 1 {
		fmt.Fprintf(w, "  |  Matches: %d", rep.TotalMatches)
	}
	fmt.Fprintf(w, "  |  Checks: %d  passed=%d  failed=%d\n\n",
		rep.Summary.TotalChecks, rep.Summary.Passed, rep.Summary.Failed)

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("STATUS", "CHECK", "ISSUES")

	keys := make([]string, 0, len(rep.Checks))
	for k := range rep.Checks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cr := rep.Checks[k]
		status := "PASS"
		if !cr.Passed {
			status = "FAIL"
		}
		issues := "-"
		if len(cr.Issues) > 0 {
			issues = cr.Issues[0]
			if len(cr.Issues) > 1 {
				issues = fmt.Sprintf("%s (+%d more)", issues, len(cr.Issues)-1)
			}
		}
		table.Append(status, cr.Name, issues)
	}
	table.Render()

	if len(rep.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		for _, e := range rep.Errors {
			fmt.Fprintf(w, "  * %s\n", e)
		}
	}
	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings (review manually):")
		for _, warn := range rep.Warnings {
			fmt.Fprintf(w, "  * %s\n", warn)
		}
	}

	if rep.Summary.Failed == 0 {
		fmt.Fprintln(w, "\nAll checks passed.")
	} else {
		fmt.Fprintf(w, "\n%d check(s) failed, review errors above.\n", rep.Summary.Failed)
	}
}
