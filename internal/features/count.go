// Package features turns raw decoder snapshots into per-round feature
// records for round-outcome modeling.
package features

import (
	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// CountWeapon counts occurrences of the selected item(s) across every
// inventory in the team snapshot. Never negative; upper bounds are a
// validator concern, not enforced here.
func CountWeapon(team []model.PlayerSnapshot, sel catalog.Selector) int {
	n := 0
	for _, p := range team {
		for _, item := range p.Inventory {
			if sel.Matches(item) {
				n++
			}
		}
	}
	return n
}

// CountTotalWeaponValue sums count×price over every cataloged weapon held
// by the team. Armor, utility and gear are priced separately.
func CountTotalWeaponValue(team []model.PlayerSnapshot, cat *catalog.Catalog) int {
	total := 0
	for _, p := range team {
		for _, item := range p.Inventory {
			total += cat.WeaponPrices()[item]
		}
	}
	return total
}

// CountItems counts the selected item(s) still held in inventory at the
// snapshot plus occurrences in the thrown-grenade table. The double count
// is intentional: grenades leave inventory the instant they are thrown,
// so reconstructing round-start utility commitment needs both sources.
func CountItems(team []model.PlayerSnapshot, throws []model.GrenadeThrow, sel catalog.Selector) int {
	n := CountWeapon(team, sel)
	for _, t := range throws {
		if sel.Matches(t.Type) {
			n++
		}
	}
	return n
}
