package features

import (
	"reflect"
	"strings"
	"testing"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// makeRawRound builds a round with full rosters, the given pre-round
// scores and winner label. Freeze ends at tick base+1000.
func makeRawRound(number, base int, ctScore, tScore int, winner string) model.RawRound {
	start := bothSides(team(model.SideCT, 800), team(model.SideT, 800))
	for i := range start {
		if start[i].Side == model.SideCT {
			start[i].TeamScore = ctScore
		} else {
			start[i].TeamScore = tScore
		}
	}
	buy := bothSides(team(model.SideCT, 200, "USP-S"), team(model.SideT, 200, "Glock-18"))
	return model.RawRound{
		Number:          number,
		StartTick:       base,
		FreezeEndTick:   base + 1000,
		OfficialEndTick: base + 9000,
		WinnerLabel:     winner,
		StartSnapshots:  start,
		BuySnapshots:    buy,
		EndSurvivors:    team(model.SideCT, 0, "M4A4")[:1],
	}
}

func makeRawMatch(rounds ...model.RawRound) *model.RawMatch {
	return &model.RawMatch{
		MatchID:  "deadbeef",
		MapName:  "de_ancient",
		TickRate: 64,
		Rounds:   rounds,
	}
}

func TestExtractMatchThreadsRounds(t *testing.T) {
	cat := catalog.New()
	raw := makeRawMatch(
		makeRawRound(1, 0, 0, 0, "CT"),
		makeRawRound(2, 10000, 1, 0, "CT"),
		makeRawRound(3, 20000, 2, 0, "T"),
	)
	rows, err := ExtractMatch(raw, cat)
	if err != nil {
		t.Fatalf("ExtractMatch: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].CTScore != 0 || rows[1].CTScore != 1 || rows[2].CTScore != 2 {
		t.Errorf("CT scores = %d,%d,%d; want 0,1,2", rows[0].CTScore, rows[1].CTScore, rows[2].CTScore)
	}
	if rows[0].RoundWinner != 1 || rows[2].RoundWinner != 0 {
		t.Errorf("winners = %d,%d; want 1,0", rows[0].RoundWinner, rows[2].RoundWinner)
	}
	if rows[1].CTWonStreak != 1 || rows[2].CTWonStreak != 2 {
		t.Errorf("CT won streaks = %d,%d; want 1,2", rows[1].CTWonStreak, rows[2].CTWonStreak)
	}
	// Round 1 has no prior context; rounds 2 and 3 inherit the single
	// CT survivor from each preceding round.
	if rows[0].CTSurvivorsPrev != 0 {
		t.Errorf("round 1 survivors = %d, want 0", rows[0].CTSurvivorsPrev)
	}
	if rows[1].CTSurvivorsPrev != 1 || rows[2].CTSurvivorsPrev != 1 {
		t.Errorf("survivor carry = %d,%d; want 1,1", rows[1].CTSurvivorsPrev, rows[2].CTSurvivorsPrev)
	}
}

func TestExtractMatchDeterministic(t *testing.T) {
	cat := catalog.New()
	raw := makeRawMatch(
		makeRawRound(1, 0, 0, 0, "CT"),
		makeRawRound(2, 20000, 1, 0, "T"),
		makeRawRound(3, 40000, 1, 1, "CT"),
	)
	raw.Projectiles = []model.ProjectileSample{
		sample(1050, 1, "ct1", "CSmokeGrenadeProjectile"),
		sample(21080, 2, "t1", "CMolotovProjectile"),
	}

	first, err := ExtractMatch(raw, cat)
	if err != nil {
		t.Fatalf("ExtractMatch: %v", err)
	}
	second, err := ExtractMatch(raw, cat)
	if err != nil {
		t.Fatalf("ExtractMatch (second run): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractMatchNonContiguousRounds(t *testing.T) {
	cat := catalog.New()
	raw := makeRawMatch(
		makeRawRound(1, 0, 0, 0, "CT"),
		makeRawRound(3, 10000, 1, 0, "CT"),
	)
	_, err := ExtractMatch(raw, cat)
	if err == nil || !strings.Contains(err.Error(), "non-contiguous") {
		t.Fatalf("expected non-contiguous error, got %v", err)
	}
}

func TestExtractMatchEmptySnapshotsAborts(t *testing.T) {
	cat := catalog.New()
	bad := makeRawRound(2, 10000, 1, 0, "T")
	bad.BuySnapshots = nil
	raw := makeRawMatch(makeRawRound(1, 0, 0, 0, "CT"), bad)
	_, err := ExtractMatch(raw, cat)
	if err == nil {
		t.Fatal("expected error for round without snapshots")
	}
}

func TestExtractMatchNilInput(t *testing.T) {
	if _, err := ExtractMatch(nil, catalog.New()); err == nil {
		t.Fatal("expected error for nil match")
	}
}

func TestExtractMatchThrowWindow(t *testing.T) {
	cat := catalog.New()
	round := makeRawRound(1, 0, 0, 0, "CT")
	raw := makeRawMatch(round)
	// Freeze ends at 1000; at 64 ticks/s the window closes at 1128.
	raw.Projectiles = []model.ProjectileSample{
		sample(1000, 1, "ct1", "CSmokeGrenadeProjectile"), // at freeze end: out
		sample(1050, 2, "ct1", "CSmokeGrenadeProjectile"), // in
		sample(1128, 3, "t1", "CSmokeGrenadeProjectile"),  // at window edge: in
		sample(1129, 4, "t1", "CSmokeGrenadeProjectile"),  // out
	}
	rows, err := ExtractMatch(raw, cat)
	if err != nil {
		t.Fatalf("ExtractMatch: %v", err)
	}
	if rows[0].CTSmokes != 1 || rows[0].TSmokes != 1 {
		t.Errorf("smokes = %d/%d, want 1/1", rows[0].CTSmokes, rows[0].TSmokes)
	}
}

func TestWinnerBit(t *testing.T) {
	cases := map[string]int{
		"CT": 1, "ct": 1, " Ct ": 1,
		"T": 0, "t": 0, "": 0, "draw": 0,
	}
	for label, want := range cases {
		if got := winnerBit(label); got != want {
			t.Errorf("winnerBit(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestSnapshotTickDefaultsTickRate(t *testing.T) {
	round := model.RawRound{FreezeEndTick: 500}
	if got := snapshotTickFor(round, 0); got != 500+128 {
		t.Errorf("snapshot tick = %d, want 628 (64hz fallback)", got)
	}
	if got := snapshotTickFor(round, 128); got != 500+256 {
		t.Errorf("snapshot tick = %d, want 756", got)
	}
}
