package decoder

import (
	"github.com/rs/zerolog"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
)

// equipmentAliases maps decoder equipment labels to the catalog's
// canonical names where the two disagree. Names absent from this table
// already match the catalog spelling.
var equipmentAliases = map[string]string{
	"HE Grenade":      catalog.HEGrenade,
	"M4A1":            "M4A1-S",
	"CZ75 Auto":       "CZ75-Auto",
	"Kevlar + Helmet": catalog.KevlarHelmet,
	"C4":              "C4 Explosive",
	"Scar-20":         "SCAR-20",
}

// canonicalItemName normalizes a decoded equipment label. Unknown labels
// pass through unchanged; they price as zero, which is correct for
// knives and other cosmetics.
func canonicalItemName(name string, log zerolog.Logger, cat *catalog.Catalog) string {
	if alias, ok := equipmentAliases[name]; ok {
		return alias
	}
	if cat.Price(name) == 0 && !knownZeroValue[name] {
		log.Debug().Str("item", name).Msg("uncataloged item, priced as zero")
	}
	return name
}

// knownZeroValue lists labels that are legitimately priceless so the
// debug log stays quiet on every knife pull.
var knownZeroValue = map[string]bool{
	"Knife":        true,
	"Bayonet":      true,
	"C4 Explosive": true,
	"World":        true,
	"Unknown":      true,
}
