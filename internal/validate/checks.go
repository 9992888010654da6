package validate

import (
	"fmt"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

func checkMoneyRange(t *table, cfg Config) ([]string, string) {
	maxTeam := 5 * cfg.MaxCashPerPlayer
	var issues []string
	for _, r := range t.rows {
		if r.CTMoneyTotal > maxTeam || r.CTCash > maxTeam {
			issues = append(issues, fmt.Sprintf("%s: CT money %d exceeds team max %d", t.rowRef(r), r.CTMoneyTotal, maxTeam))
		}
		if r.TMoneyTotal > maxTeam || r.TCash > maxTeam {
			issues = append(issues, fmt.Sprintf("%s: T money %d exceeds team max %d", t.rowRef(r), r.TMoneyTotal, maxTeam))
		}
	}
	if len(issues) > 0 {
		return issues, fmt.Sprintf("Money exceeds max in %d rounds", len(issues))
	}
	return nil, ""
}

func checkWeaponCounts(t *table, _ Config) ([]string, string) {
	inRange := func(n int) bool { return n >= 0 && n <= 5 }
	var issues []string
	for _, r := range t.rows {
		if !inRange(r.CTAWPs) || !inRange(r.TAWPs) {
			issues = append(issues, fmt.Sprintf("%s: AWP counts CT=%d T=%d outside 0-5", t.rowRef(r), r.CTAWPs, r.TAWPs))
		}
		if !inRange(r.CTRifles) || !inRange(r.TRifles) {
			issues = append(issues, fmt.Sprintf("%s: rifle counts CT=%d T=%d outside 0-5", t.rowRef(r), r.CTRifles, r.TRifles))
		}
	}
	if len(issues) > 0 {
		return issues, "Weapon counts outside 0-5 range"
	}
	return nil, ""
}

// transitions visits every consecutive (prev, curr) round pair within
// each match where curr is not a side-switch round.
func (t *table) transitions(visit func(prev, curr model.RoundFeatures)) {
	for _, id := range t.matchIDs {
		rs := t.byMatch[id]
		for i := 1; i < len(rs); i++ {
			if model.SideSwitch(rs[i].RoundNumber) {
				continue
			}
			visit(rs[i-1], rs[i])
		}
	}
}

func checkScoreProgression(t *table, _ Config) ([]string, string) {
	var issues []string
	t.transitions(func(prev, curr model.RoundFeatures) {
		delta := (curr.CTScore - prev.CTScore) + (curr.TScore - prev.TScore)
		if delta != 1 {
			issues = append(issues, fmt.Sprintf("%s: score increased by %d (expected 1)", t.rowRef(curr), delta))
		}
	})
	if len(issues) > 0 {
		return issues, fmt.Sprintf("Score progression issues in %d rounds", len(issues))
	}
	return nil, ""
}

func checkStreakResets(t *table, _ Config) ([]string, string) {
	var issues []string
	for _, r := range t.rows {
		if !model.SideSwitch(r.RoundNumber) {
			continue
		}
		if r.CTWonStreak != 0 || r.CTLostStreak != 0 || r.TWonStreak != 0 || r.TLostStreak != 0 {
			issues = append(issues, fmt.Sprintf("%s: streaks not reset at side switch", t.rowRef(r)))
		}
	}
	if len(issues) > 0 {
		return issues, fmt.Sprintf("Streak reset issues in %d rounds", len(issues))
	}
	return nil, ""
}

func checkEquipmentResets(t *table, _ Config) ([]string, string) {
	var issues []string
	for _, r := range t.rows {
		if !model.SideSwitch(r.RoundNumber) {
			continue
		}
		if r.CTEquipSavedValue != 0 || r.TEquipSavedValue != 0 ||
			r.CTSurvivorsPrev != 0 || r.TSurvivorsPrev != 0 {
			issues = append(issues, fmt.Sprintf("%s: equipment saved not reset at side switch", t.rowRef(r)))
		}
	}
	if len(issues) > 0 {
		return issues, fmt.Sprintf("Equipment reset issues in %d rounds", len(issues))
	}
	return nil, ""
}

func checkWinnerConsistency(t *table, _ Config) ([]string, string) {
	var issues []string
	t.transitions(func(prev, curr model.RoundFeatures) {
		if curr.CTScore > prev.CTScore && prev.RoundWinner != 1 {
			issues = append(issues, fmt.Sprintf("%s: CT score increased but winner=%d", t.rowRef(curr), prev.RoundWinner))
		}
		if curr.TScore > prev.TScore && prev.RoundWinner != 0 {
			issues = append(issues, fmt.Sprintf("%s: T score increased but winner=%d", t.rowRef(curr), prev.RoundWinner))
		}
	})
	if len(issues) > 0 {
		return issues, fmt.Sprintf("Winner consistency issues in %d rounds", len(issues))
	}
	return nil, ""
}

func checkPistolRound(t *table, cfg Config) ([]string, string) {
	var issues []string
	for _, id := range t.matchIDs {
		rs := t.byMatch[id]
		if len(rs) == 0 || rs[0].RoundNumber != 1 {
			continue
		}
		first := rs[0]
		if first.CTMoneyTotal != cfg.PistolMoneyTotal {
			issues = append(issues, fmt.Sprintf("%s: CT money %d (expected %d)", t.rowRef(first), first.CTMoneyTotal, cfg.PistolMoneyTotal))
		}
		if first.TMoneyTotal != cfg.PistolMoneyTotal {
			issues = append(issues, fmt.Sprintf("%s: T money %d (expected %d)", t.rowRef(first), first.TMoneyTotal, cfg.PistolMoneyTotal))
		}
		if first.CTAWPs > 0 || first.TAWPs > 0 {
			issues = append(issues, fmt.Sprintf("%s: AWPs present in pistol round", t.rowRef(first)))
		}
		if first.CTRifles > 0 || first.TRifles > 0 {
			issues = append(issues, fmt.Sprintf("%s: rifles present in pistol round (unusual)", t.rowRef(first)))
		}
	}
	if len(issues) > 0 {
		return issues, "Pistol round has unusual features"
	}
	return nil, ""
}
