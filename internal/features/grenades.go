package features

import (
	"sort"
	"strings"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// projectileClassNames maps stripped engine class labels to the six
// canonical grenade categories. Labels not listed here pass through
// unchanged so unseen engine variants never break extraction.
var projectileClassNames = map[string]string{
	"SmokeGrenade":      catalog.SmokeGrenade,
	"Flashbang":         catalog.Flashbang,
	"HEGrenade":         catalog.HEGrenade,
	"Molotov":           catalog.Molotov,
	"MolotovGrenade":    catalog.Molotov,
	"IncendiaryGrenade": catalog.Incendiary,
	"DecoyGrenade":      catalog.DecoyGrenade,
}

// normalizeGrenadeType turns an engine projectile class label (e.g.
// "CSmokeGrenadeProjectile") into a canonical grenade category.
func normalizeGrenadeType(raw string) string {
	name := strings.TrimSuffix(strings.TrimPrefix(raw, "C"), "Projectile")
	if canonical, ok := projectileClassNames[name]; ok {
		return canonical
	}
	return name
}

// ExtractThrows derives the throw events inside the window
// (lo, hi]: one row per physical grenade entity, keyed on entity
// identity, keeping its earliest sample with a resolved position.
// Returns rows ordered by tick; an empty window yields an empty slice.
func ExtractThrows(samples []model.ProjectileSample, lo, hi int) []model.GrenadeThrow {
	inWindow := make([]model.ProjectileSample, 0, len(samples))
	for _, s := range samples {
		if s.Tick <= lo || s.Tick > hi {
			continue
		}
		// A sample without a resolved position is a projectile not yet
		// simulated (or despawned before capture), not a throw event.
		if !s.HasPosition() {
			continue
		}
		inWindow = append(inWindow, s)
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Tick < inWindow[j].Tick
	})

	seen := make(map[int]bool, len(inWindow))
	var out []model.GrenadeThrow
	for _, s := range inWindow {
		if seen[s.EntityID] {
			continue
		}
		seen[s.EntityID] = true
		out = append(out, model.GrenadeThrow{
			Tick:    s.Tick,
			Thrower: s.Thrower,
			Type:    normalizeGrenadeType(s.RawType),
		})
	}
	return out
}
