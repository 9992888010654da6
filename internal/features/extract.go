package features

import (
	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// teamSize is the fixed divisor for per-player averages. Competitive CS2
// is always 5v5; disconnects and bot substitutions are not adapted for.
const teamSize = 5

// RoundInput is everything Extract needs to build one round's features.
type RoundInput struct {
	MatchID     string
	RoundNumber int
	MapName     string
	CTScore     int // pre-round score
	TScore      int
	RoundWinner int // 1 = CT, 0 = T

	Start    []model.PlayerSnapshot // at round start
	Snapshot []model.PlayerSnapshot // at freeze-end + 2s
	Throws   []model.GrenadeThrow   // thrown in (freeze-end, snapshot]

	// Previous-round context; nil on round 1 or after a driver restart.
	Prev          *model.RoundFeatures
	PrevSurvivors []model.PlayerSnapshot
}

// Extract builds one RoundFeatures record from the round's snapshots and
// the previous round's context. Pure: identical input yields an
// identical record.
func Extract(in RoundInput, cat *catalog.Catalog) model.RoundFeatures {
	ctStart, tStart := splitSides(in.Start)
	ctSnap, tSnap := splitSides(in.Snapshot)

	// Throws are attributed by thrower name against the snapshot-time
	// rosters. A thrower who died before the snapshot is silently
	// excluded from the team's utility accounting; this is an accepted
	// approximation.
	ctThrows := throwsBy(in.Throws, nameSet(ctSnap))
	tThrows := throwsBy(in.Throws, nameSet(tSnap))

	f := model.RoundFeatures{
		MatchID:     in.MatchID,
		RoundNumber: in.RoundNumber,
		MapName:     in.MapName,
		CTScore:     in.CTScore,
		TScore:      in.TScore,
		RoundWinner: in.RoundWinner,
	}

	// Economy. Money totals capture the economic power entering the
	// round, before this round's buy; cash is what is left after it.
	f.CTMoneyTotal = sumBalance(ctStart) + sumEquipValue(ctStart)
	f.TMoneyTotal = sumBalance(tStart) + sumEquipValue(tStart)
	f.CTCash = sumBalance(ctSnap)
	f.TCash = sumBalance(tSnap)
	f.CTCashAvg = float64(f.CTCash) / teamSize
	f.TCashAvg = float64(f.TCash) / teamSize
	f.CTArmor = countIf(ctSnap, func(p model.PlayerSnapshot) bool { return p.ArmorValue > 0 })
	f.TArmor = countIf(tSnap, func(p model.PlayerSnapshot) bool { return p.ArmorValue > 0 })
	f.CTHelmets = countIf(ctSnap, func(p model.PlayerSnapshot) bool { return p.HasHelmet })
	f.THelmets = countIf(tSnap, func(p model.PlayerSnapshot) bool { return p.HasHelmet })
	f.CTDefusers = countIf(ctSnap, func(p model.PlayerSnapshot) bool { return p.HasDefuser })

	// Armament is a held-weapon concept: snapshot inventories only, no
	// thrown-table contribution.
	f.CTAWPs = CountWeapon(ctSnap, catalog.Item(catalog.AWP))
	f.TAWPs = CountWeapon(tSnap, catalog.Item(catalog.AWP))
	f.CTSSGs = CountWeapon(ctSnap, catalog.Item(catalog.SSG08))
	f.TSSGs = CountWeapon(tSnap, catalog.Item(catalog.SSG08))
	f.CTRifles = CountWeapon(ctSnap, catalog.Category(cat.Rifles))
	f.TRifles = CountWeapon(tSnap, catalog.Category(cat.Rifles))
	f.CTSMGs = CountWeapon(ctSnap, catalog.Category(cat.SMGs))
	f.TSMGs = CountWeapon(tSnap, catalog.Category(cat.SMGs))
	f.CTHeavy = CountWeapon(ctSnap, catalog.Category(cat.Heavy))
	f.THeavy = CountWeapon(tSnap, catalog.Category(cat.Heavy))
	f.CTAKs = CountWeapon(ctSnap, catalog.Item(catalog.AK47))
	f.TAKs = CountWeapon(tSnap, catalog.Item(catalog.AK47))

	// Utility: inventory plus thrown, per side.
	firebombs := catalog.Set{catalog.Incendiary: true, catalog.Molotov: true}
	f.CTSmokes = CountItems(ctSnap, ctThrows, catalog.Item(catalog.SmokeGrenade))
	f.TSmokes = CountItems(tSnap, tThrows, catalog.Item(catalog.SmokeGrenade))
	f.CTMolotovs = CountItems(ctSnap, ctThrows, catalog.Category(firebombs))
	f.TMolotovs = CountItems(tSnap, tThrows, catalog.Category(firebombs))
	f.CTFlashes = CountItems(ctSnap, ctThrows, catalog.Item(catalog.Flashbang))
	f.TFlashes = CountItems(tSnap, tThrows, catalog.Item(catalog.Flashbang))
	f.CTHEs = CountItems(ctSnap, ctThrows, catalog.Item(catalog.HEGrenade))
	f.THEs = CountItems(tSnap, tThrows, catalog.Item(catalog.HEGrenade))
	f.CTUtilityValue = utilityValue(ctSnap, ctThrows, cat)
	f.TUtilityValue = utilityValue(tSnap, tThrows, cat)

	// Equipment value. Terrorists cannot carry defuse kits, so the T
	// side has no defuser term.
	f.CTEquipValue = f.CTArmor*cat.Price(catalog.KevlarVest) +
		f.CTHelmets*catalog.HelmetUpcharge +
		f.CTDefusers*cat.Price(catalog.DefuseKit) +
		f.CTUtilityValue +
		CountTotalWeaponValue(ctSnap, cat)
	f.TEquipValue = f.TArmor*cat.Price(catalog.KevlarVest) +
		f.THelmets*catalog.HelmetUpcharge +
		f.TUtilityValue +
		CountTotalWeaponValue(tSnap, cat)
	f.CTEquipValueAvg = float64(f.CTEquipValue) / teamSize
	f.TEquipValueAvg = float64(f.TEquipValue) / teamSize

	// Context.
	f.IsSideSwitch = model.SideSwitch(in.RoundNumber)
	f.IsOvertime = model.Overtime(in.RoundNumber)

	// Streaks reset across side switches and when there is no prior
	// round. Both sides derive from the same previous winner bit, so a
	// side's won-streak and the other's lost-streak move together.
	if !f.IsSideSwitch && in.Prev != nil {
		if in.Prev.RoundWinner == 1 {
			f.CTWonStreak = in.Prev.CTWonStreak + 1
		} else {
			f.CTLostStreak = in.Prev.CTLostStreak + 1
		}
		if in.Prev.RoundWinner == 0 {
			f.TWonStreak = in.Prev.TWonStreak + 1
		} else {
			f.TLostStreak = in.Prev.TLostStreak + 1
		}
	}

	// Equipment saved by the previous round's survivors. Side switches
	// discard carried gear: the rosters swap sides, so the bring-forward
	// concept does not apply across the swap.
	if in.PrevSurvivors != nil && !f.IsSideSwitch {
		ctPrev, tPrev := splitSides(in.PrevSurvivors)
		f.CTSurvivorsPrev = len(ctPrev)
		f.TSurvivorsPrev = len(tPrev)
		f.CTEquipSavedValue = sumEquipValue(ctPrev)
		f.TEquipSavedValue = sumEquipValue(tPrev)
	}

	return f
}

// utilityValue prices the five utility categories independently.
// Incendiary and molotov are reported together as one feature but priced
// separately here, so the combined count is not reused.
func utilityValue(team []model.PlayerSnapshot, throws []model.GrenadeThrow, cat *catalog.Catalog) int {
	total := 0
	for _, name := range []string{
		catalog.SmokeGrenade,
		catalog.Flashbang,
		catalog.HEGrenade,
		catalog.Molotov,
		catalog.Incendiary,
		catalog.DecoyGrenade,
	} {
		total += CountItems(team, throws, catalog.Item(name)) * cat.Price(name)
	}
	return total
}

func splitSides(snaps []model.PlayerSnapshot) (ct, t []model.PlayerSnapshot) {
	for _, p := range snaps {
		switch p.Side {
		case model.SideCT:
			ct = append(ct, p)
		case model.SideT:
			t = append(t, p)
		}
	}
	return
}

func nameSet(snaps []model.PlayerSnapshot) map[string]bool {
	names := make(map[string]bool, len(snaps))
	for _, p := range snaps {
		names[p.Name] = true
	}
	return names
}

func throwsBy(throws []model.GrenadeThrow, names map[string]bool) []model.GrenadeThrow {
	var out []model.GrenadeThrow
	for _, t := range throws {
		if names[t.Thrower] {
			out = append(out, t)
		}
	}
	return out
}

func sumBalance(snaps []model.PlayerSnapshot) int {
	n := 0
	for _, p := range snaps {
		n += p.Balance
	}
	return n
}

func sumEquipValue(snaps []model.PlayerSnapshot) int {
	n := 0
	for _, p := range snaps {
		n += p.EquipValue
	}
	return n
}

func countIf(snaps []model.PlayerSnapshot, pred func(model.PlayerSnapshot) bool) int {
	n := 0
	for _, p := range snaps {
		if pred(p) {
			n++
		}
	}
	return n
}
