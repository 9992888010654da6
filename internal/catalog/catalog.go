// Package catalog holds the static CS2 item reference data: weapon
// categories and the canonical in-game price list used for all
// equipment-value features.
package catalog

// Canonical item names referenced throughout the feature pipeline.
const (
	KevlarVest     = "Kevlar Vest"
	KevlarHelmet   = "Kevlar & Helmet"
	DefuseKit      = "Defuse Kit"
	SmokeGrenade   = "Smoke Grenade"
	Flashbang      = "Flashbang"
	HEGrenade      = "High Explosive Grenade"
	Molotov        = "Molotov"
	Incendiary     = "Incendiary Grenade"
	DecoyGrenade   = "Decoy Grenade"
	AWP            = "AWP"
	SSG08          = "SSG 08"
	AK47           = "AK-47"
	HelmetUpcharge = 350 // helmet-only price on top of a bare vest
)

// Set is a named group of item names (e.g. all rifles).
type Set map[string]bool

// contains reports whether name is in the set.
func (s Set) contains(name string) bool { return s[name] }

// Catalog is the immutable item reference data for one game version.
// Construct once with New and pass by reference; never mutated.
type Catalog struct {
	Pistols  Set
	SMGs     Set
	Heavy    Set
	Rifles   Set
	Snipers  Set
	Grenades Set

	prices       map[string]int
	weaponPrices map[string]int
}

// New returns the catalog for the current CS2 economy.
func New() *Catalog {
	c := &Catalog{
		Pistols: Set{
			"Glock-18": true, "USP-S": true, "Tec-9": true, "P2000": true,
			"P250": true, "Dual Berettas": true, "CZ75-Auto": true,
			"Five-SeveN": true, "R8 Revolver": true, "Desert Eagle": true,
		},
		SMGs: Set{
			"MAC-10": true, "MP9": true, "UMP-45": true, "PP-Bizon": true,
			"MP5-SD": true, "MP7": true, "P90": true,
		},
		Heavy: Set{
			"Nova": true, "Sawed-Off": true, "MAG-7": true,
			"XM1014": true, "M249": true, "Negev": true,
		},
		Rifles: Set{
			"Galil AR": true, "FAMAS": true, "AK-47": true, "M4A1-S": true,
			"M4A4": true, "AUG": true, "SG 553": true, "G3SG1": true,
			"SCAR-20": true,
		},
		Snipers: Set{"SSG 08": true, "AWP": true},
		Grenades: Set{
			HEGrenade: true, Flashbang: true, SmokeGrenade: true,
			Molotov: true, Incendiary: true, DecoyGrenade: true,
		},
		prices: map[string]int{
			// Equipment
			KevlarVest:   650,
			KevlarHelmet: 1000,
			"Zeus x27":   200,
			DefuseKit:    400,
			// Bomb
			"C4 Explosive": 0,
			// Pistols
			"Glock-18": 200, "USP-S": 200, "P2000": 200,
			"Dual Berettas": 300, "P250": 300,
			"Tec-9": 500, "Five-SeveN": 500, "CZ75-Auto": 500,
			"Desert Eagle": 700, "R8 Revolver": 600,
			// SMGs
			"MAC-10": 1050, "MP9": 1250, "MP7": 1500, "MP5-SD": 1500,
			"UMP-45": 1200, "P90": 2350, "PP-Bizon": 1400,
			// Heavy
			"Nova": 1050, "Sawed-Off": 1100, "MAG-7": 1300,
			"XM1014": 2000, "M249": 5200, "Negev": 1700,
			// Rifles
			"Galil AR": 1800, "FAMAS": 1950, "AK-47": 2700,
			"M4A4": 2900, "M4A1-S": 2900, "SG 553": 3000, "AUG": 3300,
			"SSG 08": 1700, "AWP": 4750, "G3SG1": 5000, "SCAR-20": 5000,
			// Grenades
			Molotov: 400, Incendiary: 500, DecoyGrenade: 50,
			Flashbang: 200, HEGrenade: 300, SmokeGrenade: 300,
		},
	}

	// Restrict the price table to the five weapon categories; used for
	// total-weapon-value sums so armor/utility are never double counted.
	c.weaponPrices = make(map[string]int)
	for _, set := range []Set{c.Pistols, c.SMGs, c.Heavy, c.Rifles, c.Snipers} {
		for name := range set {
			c.weaponPrices[name] = c.prices[name]
		}
	}
	return c
}

// Price returns the in-game price of an item, or 0 when the item is not
// cataloged. Knife skins and other cosmetics are legitimately zero-value,
// so an unknown name is not an error.
func (c *Catalog) Price(name string) int { return c.prices[name] }

// WeaponPrices returns the price table restricted to the five weapon
// categories. The returned map is shared; callers must not mutate it.
func (c *Catalog) WeaponPrices() map[string]int { return c.weaponPrices }
