package decoder

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
)

func TestCanonicalItemName(t *testing.T) {
	cat := catalog.New()
	log := zerolog.Nop()

	cases := []struct {
		in   string
		want string
	}{
		{"HE Grenade", catalog.HEGrenade},
		{"M4A1", "M4A1-S"},
		{"CZ75 Auto", "CZ75-Auto"},
		{"Kevlar + Helmet", catalog.KevlarHelmet},
		{"C4", "C4 Explosive"},
		{"AK-47", "AK-47"},
		{"Smoke Grenade", catalog.SmokeGrenade},
		{"Knife", "Knife"},
	}
	for _, tc := range cases {
		if got := canonicalItemName(tc.in, log, cat); got != tc.want {
			t.Errorf("canonicalItemName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalNamesArePriced(t *testing.T) {
	cat := catalog.New()
	log := zerolog.Nop()

	// Every alias target except the bomb must resolve to a cataloged price.
	for from, to := range equipmentAliases {
		if to == "C4 Explosive" {
			continue
		}
		if cat.Price(canonicalItemName(from, log, cat)) == 0 {
			t.Errorf("alias %q -> %q has no catalog price", from, to)
		}
	}
}
