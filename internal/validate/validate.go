// Package validate re-derives CS2 round-format invariants from an
// extracted feature table and reports where the data breaks them. It is
// independent of how the features were computed: every rule is
// re-expressed here from the game rules alone.
package validate

import (
	"fmt"
	"sort"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// Config tunes the rule thresholds. Zero values select the defaults.
type Config struct {
	MaxCashPerPlayer int // per-player money cap; default 16000
	PistolMoneyTotal int // expected round-1 money per side; default 4000
	MaxIssues        int // offending rows listed per check; default 5
	Skip             []string
}

func (c Config) withDefaults() Config {
	if c.MaxCashPerPlayer == 0 {
		c.MaxCashPerPlayer = 16000
	}
	if c.PistolMoneyTotal == 0 {
		c.PistolMoneyTotal = 4000
	}
	if c.MaxIssues == 0 {
		c.MaxIssues = 5
	}
	return c
}

// CheckResult is one rule's verdict plus a bounded list of offenders.
type CheckResult struct {
	Name   string   `json:"name"`
	Passed bool     `json:"passed"`
	Issues []string `json:"issues"`
}

// Summary counts the report's outcomes.
type Summary struct {
	TotalChecks int `json:"total_checks"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Warnings    int `json:"warnings"`
	Errors      int `json:"errors"`
}

// Report is the full validation result. Errors are hard rule breaks
// guaranteed by the match format; warnings mark merely-typical
// expectations (a force-bought rifle on round 1 is legal, just unusual).
type Report struct {
	TotalRounds  int                    `json:"total_rounds"`
	TotalMatches int                    `json:"total_matches,omitempty"`
	Checks       map[string]CheckResult `json:"checks"`
	Warnings     []string               `json:"warnings"`
	Errors       []string               `json:"errors"`
	Summary      Summary                `json:"summary"`
}

type severity int

const (
	sevError severity = iota
	sevWarning
)

// check is one independent rule: run returns the offending-row
// descriptions and a one-line summary used in the error/warning lists.
type check struct {
	key  string
	name string
	sev  severity
	run  func(t *table, cfg Config) (issues []string, summary string)
}

func allChecks() []check {
	return []check{
		{"money_range", "Money within valid range", sevError, checkMoneyRange},
		{"weapon_counts", "AWP and rifle counts valid (0-5)", sevError, checkWeaponCounts},
		{"score_progression", "Score increases by 1 each round", sevError, checkScoreProgression},
		{"streak_resets", "Streaks reset at side switches", sevError, checkStreakResets},
		{"equipment_resets", "Equipment saved reset at side switches", sevError, checkEquipmentResets},
		{"winner_consistency", "Round winner matches score increase", sevWarning, checkWinnerConsistency},
		{"pistol_round", "Round 1 pistol characteristics", sevWarning, checkPistolRound},
	}
}

// Run validates the feature table, which may span several matches
// (grouped by match id for ordered checks). Validation never aborts:
// every check runs and the report is always complete.
func Run(rows []model.RoundFeatures, cfg Config) *Report {
	cfg = cfg.withDefaults()
	t := newTable(rows)

	skip := make(map[string]bool, len(cfg.Skip))
	for _, k := range cfg.Skip {
		skip[k] = true
	}

	rep := &Report{
		TotalRounds:  len(rows),
		TotalMatches: len(t.matchIDs),
		Checks:       make(map[string]CheckResult),
		Warnings:     []string{},
		Errors:       []string{},
	}

	for _, c := range allChecks() {
		if skip[c.key] {
			continue
		}
		issues, summary := c.run(t, cfg)
		passed := len(issues) == 0
		capped := issues
		if len(capped) > cfg.MaxIssues {
			capped = capped[:cfg.MaxIssues]
		}
		if capped == nil {
			capped = []string{}
		}
		rep.Checks[c.key] = CheckResult{Name: c.name, Passed: passed, Issues: capped}
		if !passed {
			if summary == "" {
				summary = fmt.Sprintf("%s: %d issue(s)", c.name, len(issues))
			}
			if c.sev == sevError {
				rep.Errors = append(rep.Errors, summary)
			} else {
				rep.Warnings = append(rep.Warnings, summary)
			}
		}
	}

	rep.Summary = Summary{
		TotalChecks: len(rep.Checks),
		Warnings:    len(rep.Warnings),
		Errors:      len(rep.Errors),
	}
	for _, cr := range rep.Checks {
		if cr.Passed {
			rep.Summary.Passed++
		} else {
			rep.Summary.Failed++
		}
	}
	return rep
}

// table indexes the input rows per match, sorted by round number.
type table struct {
	rows     []model.RoundFeatures
	matchIDs []string
	byMatch  map[string][]model.RoundFeatures
}

func newTable(rows []model.RoundFeatures) *table {
	t := &table{rows: rows, byMatch: make(map[string][]model.RoundFeatures)}
	for _, r := range rows {
		if _, ok := t.byMatch[r.MatchID]; !ok {
			t.matchIDs = append(t.matchIDs, r.MatchID)
		}
		t.byMatch[r.MatchID] = append(t.byMatch[r.MatchID], r)
	}
	sort.Strings(t.matchIDs)
	for id := range t.byMatch {
		rs := t.byMatch[id]
		sort.Slice(rs, func(i, j int) bool { return rs[i].RoundNumber < rs[j].RoundNumber })
	}
	return t
}

// rowRef labels one offending row; the match prefix is omitted for
// single-match tables where it adds nothing.
func (t *table) rowRef(r model.RoundFeatures) string {
	if len(t.matchIDs) <= 1 {
		return fmt.Sprintf("Round %d", r.RoundNumber)
	}
	id := r.MatchID
	if len(id) > 12 {
		id = id[:12]
	}
	return fmt.Sprintf("%s round %d", id, r.RoundNumber)
}
