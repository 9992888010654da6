package model

// Side represents which in-game side a player occupies in a round.
type Side int

const (
	SideUnknown Side = 0
	SideT       Side = 1
	SideCT      Side = 2
)

func (s Side) String() string {
	switch s {
	case SideT:
		return "T"
	case SideCT:
		return "CT"
	default:
		return "?"
	}
}

// ---- Raw per-tick state captured by the decoder ----

// PlayerSnapshot is one living player's state at one queried tick.
// Immutable once captured; scoped to a single round.
type PlayerSnapshot struct {
	Name       string
	Side       Side
	Balance    int
	EquipValue int // current equipment value as reported by the game
	ArmorValue int
	HasHelmet  bool
	HasDefuser bool
	Inventory  []string // canonical item names, duplicates allowed
	TeamScore  int      // the player's own team's round total at the tick
}

// ProjectileSample is one observation of a grenade projectile entity at
// one tick. The same physical grenade appears in many samples as it
// flies; deduplication happens in the thrown-utility extractor.
type ProjectileSample struct {
	Tick     int
	EntityID int
	Thrower  string
	RawType  string // engine class label, e.g. "CSmokeGrenadeProjectile"
	X, Y, Z  float64
}

// HasPosition reports whether the sample carries a resolved world
// position. A projectile that was never simulated networks as all-zero.
func (p ProjectileSample) HasPosition() bool {
	return p.X != 0 || p.Y != 0 || p.Z != 0
}

// GrenadeThrow is one physical grenade's throw event: the earliest valid
// position sample of its projectile entity, with the type label
// normalized to one of the six canonical grenade categories.
type GrenadeThrow struct {
	Tick    int
	Thrower string
	Type    string
}

// RawRound is one round's boundary metadata plus the state captured at
// the three sample points the feature extractor consumes.
type RawRound struct {
	Number          int // 1-based, contiguous
	StartTick       int
	FreezeEndTick   int
	OfficialEndTick int
	WinnerLabel     string // declared winner, e.g. "CT" or "T"

	StartSnapshots []PlayerSnapshot // at StartTick
	BuySnapshots   []PlayerSnapshot // at FreezeEndTick + 2s
	EndSurvivors   []PlayerSnapshot // living players at official round end
}

// RawMatch is everything the decoder extracts from one demo file.
type RawMatch struct {
	MatchID     string // sha256 of the demo file
	MapName     string
	TickRate    float64
	Rounds      []RawRound
	Projectiles []ProjectileSample // whole match, all ticks observed
}

// ---- Extracted features ----

// RoundFeatures is one flat feature record per round. Constructed once by
// the round feature extractor and never mutated afterwards.
type RoundFeatures struct {
	MatchID     string
	RoundNumber int
	MapName     string

	CTScore int
	TScore  int

	// Economy
	CTMoneyTotal int
	TMoneyTotal  int
	CTCash       int
	TCash        int
	CTCashAvg    float64
	TCashAvg     float64
	CTArmor      int
	TArmor       int
	CTHelmets    int
	THelmets     int
	CTDefusers   int

	// Armament
	CTAWPs   int
	TAWPs    int
	CTSSGs   int
	TSSGs    int
	CTRifles int
	TRifles  int
	CTSMGs   int
	TSMGs    int
	CTHeavy  int
	THeavy   int
	CTAKs    int
	TAKs     int

	// Utility (inventory + thrown)
	CTSmokes       int
	TSmokes        int
	CTMolotovs     int // incendiary + molotov combined
	TMolotovs      int
	CTFlashes      int
	TFlashes       int
	CTHEs          int
	THEs           int
	CTUtilityValue int
	TUtilityValue  int

	// Equipment value
	CTEquipValue    int
	TEquipValue     int
	CTEquipValueAvg float64
	TEquipValueAvg  float64

	// Streaks
	CTWonStreak  int
	CTLostStreak int
	TWonStreak   int
	TLostStreak  int

	// Carried over from the previous round
	CTSurvivorsPrev   int
	TSurvivorsPrev    int
	CTEquipSavedValue int
	TEquipSavedValue  int

	IsSideSwitch bool
	IsOvertime   bool

	// Target: 1 = CT won the round, 0 = T won.
	RoundWinner int
}

// SideSwitch reports whether round n is the first round after a side
// swap: halftime at round 13, then every 3 rounds in overtime starting
// at round 25.
func SideSwitch(n int) bool {
	return n == 13 || (n > 24 && (n-25)%3 == 0)
}

// Overtime reports whether round n lies beyond the 24 regulation rounds.
func Overtime(n int) bool { return n > 24 }

// MatchSummary is a lightweight record for list/show commands.
type MatchSummary struct {
	MatchID   string
	MapName   string
	MatchDate string
	Source    string // e.g. "local", "hltv"
	TickRate  float64
	Rounds    int
	CTScore   int
	TScore    int
}
