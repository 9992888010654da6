package features

import (
	"fmt"
	"strings"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// ExtractMatch walks one match's rounds in order and assembles the
// per-match feature table, threading each round's output and survivor
// snapshot into the next round's input.
//
// A round without usable snapshots aborts the whole match: later rounds
// depend on earlier ones, so a partial table is not salvageable.
func ExtractMatch(raw *model.RawMatch, cat *catalog.Catalog) ([]model.RoundFeatures, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil RawMatch")
	}

	rows := make([]model.RoundFeatures, 0, len(raw.Rounds))
	var prev *model.RoundFeatures
	var prevSurvivors []model.PlayerSnapshot

	for i, round := range raw.Rounds {
		if round.Number != i+1 {
			return nil, fmt.Errorf("round %d: non-contiguous round numbering (got %d)", i+1, round.Number)
		}
		if len(round.StartSnapshots) == 0 || len(round.BuySnapshots) == 0 {
			return nil, fmt.Errorf("round %d: no player snapshots decoded", round.Number)
		}

		snapshotTick := snapshotTickFor(round, raw.TickRate)
		throws := ExtractThrows(raw.Projectiles, round.FreezeEndTick, snapshotTick)

		ctScore, tScore := scoresFromStart(round.StartSnapshots)

		in := RoundInput{
			MatchID:       raw.MatchID,
			RoundNumber:   round.Number,
			MapName:       raw.MapName,
			CTScore:       ctScore,
			TScore:        tScore,
			RoundWinner:   winnerBit(round.WinnerLabel),
			Start:         round.StartSnapshots,
			Snapshot:      round.BuySnapshots,
			Throws:        throws,
			Prev:          prev,
			PrevSurvivors: prevSurvivors,
		}

		rows = append(rows, Extract(in, cat))
		prev = &rows[len(rows)-1]
		prevSurvivors = round.EndSurvivors
	}
	return rows, nil
}

// snapshotOffsetSeconds is the fixed delay after freeze-time end at which
// team state is sampled, long enough for buys to settle.
const snapshotOffsetSeconds = 2

func snapshotTickFor(round model.RawRound, tickRate float64) int {
	if tickRate <= 0 {
		tickRate = 64
	}
	return round.FreezeEndTick + int(snapshotOffsetSeconds*tickRate)
}

// scoresFromStart derives each side's pre-round score from the
// round-start snapshots' own running team totals.
func scoresFromStart(snaps []model.PlayerSnapshot) (ct, t int) {
	ctSeen, tSeen := false, false
	for _, p := range snaps {
		switch p.Side {
		case model.SideCT:
			if !ctSeen {
				ct = p.TeamScore
				ctSeen = true
			}
		case model.SideT:
			if !tSeen {
				t = p.TeamScore
				tSeen = true
			}
		}
	}
	return
}

func winnerBit(label string) int {
	if strings.EqualFold(strings.TrimSpace(label), "ct") {
		return 1
	}
	return 0
}
