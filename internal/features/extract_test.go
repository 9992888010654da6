package features

import (
	"math"
	"testing"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

var sideNames = map[model.Side]string{model.SideCT: "ct", model.SideT: "t"}

// team builds a five-player side where every player shares the given
// balance and inventory.
func team(side model.Side, balance int, items ...string) []model.PlayerSnapshot {
	snaps := make([]model.PlayerSnapshot, 5)
	for i := range snaps {
		snaps[i] = model.PlayerSnapshot{
			Name:      sideNames[side] + string(rune('1'+i)),
			Side:      side,
			Balance:   balance,
			Inventory: append([]string(nil), items...),
		}
	}
	return snaps
}

func bothSides(ct, t []model.PlayerSnapshot) []model.PlayerSnapshot {
	return append(append([]model.PlayerSnapshot(nil), ct...), t...)
}

func pistolInput() RoundInput {
	start := bothSides(team(model.SideCT, 800), team(model.SideT, 800))
	snap := bothSides(
		team(model.SideCT, 300, "USP-S", catalog.KevlarVest),
		team(model.SideT, 350, "Glock-18", catalog.KevlarVest),
	)
	return RoundInput{
		MatchID:     "m1",
		RoundNumber: 1,
		MapName:     "de_mirage",
		RoundWinner: 1,
		Start:       start,
		Snapshot:    snap,
	}
}

func TestExtractPistolRoundEconomy(t *testing.T) {
	cat := catalog.New()
	f := Extract(pistolInput(), cat)

	if f.CTMoneyTotal != 4000 || f.TMoneyTotal != 4000 {
		t.Errorf("pistol money totals = %d/%d, want 4000/4000", f.CTMoneyTotal, f.TMoneyTotal)
	}
	if f.CTCash != 1500 || f.TCash != 1750 {
		t.Errorf("cash = %d/%d, want 1500/1750", f.CTCash, f.TCash)
	}
	if f.CTCashAvg != 300 || f.TCashAvg != 350 {
		t.Errorf("cash avg = %v/%v, want 300/350", f.CTCashAvg, f.TCashAvg)
	}
	if f.CTAWPs != 0 || f.CTRifles != 0 || f.TRifles != 0 {
		t.Error("pistol round should have no AWPs or rifles")
	}
	if f.IsSideSwitch || f.IsOvertime {
		t.Error("round 1 is neither a side switch nor overtime")
	}
}

func TestExtractCashAvgUsesFixedDivisor(t *testing.T) {
	// Four living CT players; the average still divides by five so the
	// feature stays comparable across rounds.
	cat := catalog.New()
	in := pistolInput()
	in.Snapshot = bothSides(
		team(model.SideCT, 1000)[:4],
		team(model.SideT, 1000),
	)
	f := Extract(in, cat)
	if got, want := f.CTCashAvg, float64(4000)/5; math.Abs(got-want) > 1e-9 {
		t.Errorf("CT cash avg = %v, want %v", got, want)
	}
}

func TestExtractMoneyTotalIncludesStartEquipment(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	for i := range in.Start {
		if in.Start[i].Side == model.SideCT {
			in.Start[i].Balance = 2000
			in.Start[i].EquipValue = 3000
		}
	}
	f := Extract(in, cat)
	if f.CTMoneyTotal != 5*2000+5*3000 {
		t.Errorf("CT money total = %d, want 25000", f.CTMoneyTotal)
	}
}

func TestExtractArmamentCountsFromSnapshotOnly(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	in.Snapshot = bothSides(
		team(model.SideCT, 0, "M4A1-S", "MP9"),
		team(model.SideT, 0, "AK-47", "AWP"),
	)
	f := Extract(in, cat)
	if f.CTRifles != 5 || f.CTSMGs != 5 {
		t.Errorf("CT rifles/SMGs = %d/%d, want 5/5", f.CTRifles, f.CTSMGs)
	}
	if f.TRifles != 5 || f.TAKs != 5 || f.TAWPs != 5 {
		t.Errorf("T rifles/AKs/AWPs = %d/%d/%d, want 5/5/5", f.TRifles, f.TAKs, f.TAWPs)
	}
	if f.CTAKs != 0 {
		t.Errorf("CT AKs = %d, want 0", f.CTAKs)
	}
}

func TestExtractUtilityIncludesThrows(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	in.Snapshot = bothSides(
		team(model.SideCT, 0, catalog.SmokeGrenade),
		team(model.SideT, 0),
	)
	in.Throws = []model.GrenadeThrow{
		{Tick: 10, Thrower: "ct1", Type: catalog.SmokeGrenade},
		{Tick: 12, Thrower: "ct2", Type: catalog.Incendiary},
		{Tick: 14, Thrower: "t1", Type: catalog.Molotov},
	}
	f := Extract(in, cat)
	if f.CTSmokes != 6 {
		t.Errorf("CT smokes = %d, want 6 (5 held + 1 thrown)", f.CTSmokes)
	}
	if f.CTMolotovs != 1 || f.TMolotovs != 1 {
		t.Errorf("molotov counts = %d/%d, want 1/1", f.CTMolotovs, f.TMolotovs)
	}
}

func TestExtractThrowByDeadPlayerExcluded(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	// The thrower is absent from the snapshot roster, so the throw is
	// attributed to nobody.
	in.Throws = []model.GrenadeThrow{
		{Tick: 10, Thrower: "ghost", Type: catalog.Flashbang},
	}
	f := Extract(in, cat)
	if f.CTFlashes != 0 || f.TFlashes != 0 {
		t.Errorf("flash counts = %d/%d, want 0/0", f.CTFlashes, f.TFlashes)
	}
}

func TestExtractUtilityValuePricesFirebombsSeparately(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	in.Snapshot = bothSides(
		team(model.SideCT, 0)[:1],
		team(model.SideT, 0)[:1],
	)
	in.Snapshot[0].Inventory = []string{catalog.Incendiary}
	in.Snapshot[1].Inventory = []string{catalog.Molotov}
	f := Extract(in, cat)
	if f.CTUtilityValue != 500 {
		t.Errorf("CT utility value = %d, want 500 (incendiary)", f.CTUtilityValue)
	}
	if f.TUtilityValue != 400 {
		t.Errorf("T utility value = %d, want 400 (molotov)", f.TUtilityValue)
	}
	if f.CTMolotovs != 1 || f.TMolotovs != 1 {
		t.Errorf("combined firebomb counts = %d/%d, want 1/1", f.CTMolotovs, f.TMolotovs)
	}
}

func TestExtractEquipValueDefuserTermCTOnly(t *testing.T) {
	cat := catalog.New()
	in := pistolInput()
	ct := team(model.SideCT, 0)
	tt := team(model.SideT, 0)
	for i := range ct {
		ct[i].ArmorValue = 100
		ct[i].HasHelmet = true
		ct[i].HasDefuser = true
	}
	for i := range tt {
		tt[i].ArmorValue = 100
		tt[i].HasHelmet = true
		tt[i].HasDefuser = true // decoder noise; must not be priced
	}
	in.Snapshot = bothSides(ct, tt)
	f := Extract(in, cat)

	base := 5*650 + 5*350
	if f.CTEquipValue != base+5*400 {
		t.Errorf("CT equip value = %d, want %d", f.CTEquipValue, base+5*400)
	}
	if f.TEquipValue != base {
		t.Errorf("T equip value = %d, want %d (no defuser term)", f.TEquipValue, base)
	}
	if got, want := f.CTEquipValueAvg, float64(base+5*400)/5; math.Abs(got-want) > 1e-9 {
		t.Errorf("CT equip value avg = %v, want %v", got, want)
	}
}

func TestExtractStreaksThreadFromPreviousRound(t *testing.T) {
	cat := catalog.New()

	in1 := pistolInput()
	in1.RoundWinner = 1
	f1 := Extract(in1, cat)
	if f1.CTWonStreak != 0 || f1.TLostStreak != 0 {
		t.Error("round 1 streaks must start at zero")
	}

	in2 := pistolInput()
	in2.RoundNumber = 2
	in2.Prev = &f1
	f2 := Extract(in2, cat)
	if f2.CTWonStreak != 1 || f2.TLostStreak != 1 {
		t.Errorf("round 2 streaks = CTwon %d / Tlost %d, want 1/1", f2.CTWonStreak, f2.TLostStreak)
	}
	if f2.CTLostStreak != 0 || f2.TWonStreak != 0 {
		t.Error("opposite streaks must stay zero while one side keeps winning")
	}

	f2.RoundWinner = 0
	in3 := pistolInput()
	in3.RoundNumber = 3
	in3.Prev = &f2
	f3 := Extract(in3, cat)
	if f3.TWonStreak != 1 || f3.CTLostStreak != 1 {
		t.Errorf("round 3 streaks = Twon %d / CTlost %d, want 1/1", f3.TWonStreak, f3.CTLostStreak)
	}
	if f3.CTWonStreak != 0 {
		t.Errorf("CT won streak = %d, want 0 after a T win", f3.CTWonStreak)
	}
}

func TestExtractSideSwitchResetsStreaksAndSavedEquipment(t *testing.T) {
	cat := catalog.New()

	prev := Extract(pistolInput(), cat)
	prev.CTWonStreak = 4
	prev.RoundWinner = 1

	in := pistolInput()
	in.RoundNumber = 13
	in.Prev = &prev
	in.PrevSurvivors = team(model.SideCT, 0, "M4A4")
	f := Extract(in, cat)

	if !f.IsSideSwitch {
		t.Fatal("round 13 must be flagged as a side switch")
	}
	if f.CTWonStreak != 0 || f.CTLostStreak != 0 || f.TWonStreak != 0 || f.TLostStreak != 0 {
		t.Error("streaks must reset at the side switch")
	}
	if f.CTSurvivorsPrev != 0 || f.CTEquipSavedValue != 0 {
		t.Error("saved equipment must reset at the side switch")
	}
}

func TestExtractEquipmentSavedFromSurvivors(t *testing.T) {
	cat := catalog.New()
	prev := Extract(pistolInput(), cat)

	in := pistolInput()
	in.RoundNumber = 2
	in.Prev = &prev
	survivors := team(model.SideCT, 0)[:2]
	survivors[0].EquipValue = 4000
	survivors[1].EquipValue = 1200
	tSurvivor := team(model.SideT, 0)[:1]
	tSurvivor[0].EquipValue = 3500
	in.PrevSurvivors = bothSides(survivors, tSurvivor)

	f := Extract(in, cat)
	if f.CTSurvivorsPrev != 2 || f.TSurvivorsPrev != 1 {
		t.Errorf("survivors = %d/%d, want 2/1", f.CTSurvivorsPrev, f.TSurvivorsPrev)
	}
	if f.CTEquipSavedValue != 5200 || f.TEquipSavedValue != 3500 {
		t.Errorf("equip saved = %d/%d, want 5200/3500", f.CTEquipSavedValue, f.TEquipSavedValue)
	}
}

func TestExtractOvertimeFlagsAndSwitches(t *testing.T) {
	cases := []struct {
		round    int
		switched bool
		overtime bool
	}{
		{12, false, false},
		{13, true, false},
		{24, false, false},
		{25, true, true},
		{26, false, true},
		{27, false, true},
		{28, true, true},
		{31, true, true},
	}
	cat := catalog.New()
	for _, tc := range cases {
		in := pistolInput()
		in.RoundNumber = tc.round
		f := Extract(in, cat)
		if f.IsSideSwitch != tc.switched || f.IsOvertime != tc.overtime {
			t.Errorf("round %d: switch=%v overtime=%v, want %v/%v",
				tc.round, f.IsSideSwitch, f.IsOvertime, tc.switched, tc.overtime)
		}
	}
}
