package features

import (
	"testing"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

func player(name string, side model.Side, items ...string) model.PlayerSnapshot {
	return model.PlayerSnapshot{Name: name, Side: side, Inventory: items}
}

func TestCountWeaponSingleItem(t *testing.T) {
	team := []model.PlayerSnapshot{
		player("a", model.SideCT, "AWP", "Desert Eagle"),
		player("b", model.SideCT, "M4A1-S"),
		player("c", model.SideCT, "AWP"),
	}
	if got := CountWeapon(team, catalog.Item(catalog.AWP)); got != 2 {
		t.Errorf("AWP count = %d, want 2", got)
	}
}

func TestCountWeaponCategory(t *testing.T) {
	cat := catalog.New()
	team := []model.PlayerSnapshot{
		player("a", model.SideT, "AK-47", "Glock-18"),
		player("b", model.SideT, "Galil AR"),
		player("c", model.SideT, "AWP"),
	}
	if got := CountWeapon(team, catalog.Category(cat.Rifles)); got != 2 {
		t.Errorf("rifle count = %d, want 2 (AWP is a sniper)", got)
	}
}

func TestCountWeaponDuplicatesInOneInventory(t *testing.T) {
	team := []model.PlayerSnapshot{
		player("a", model.SideCT, catalog.Flashbang, catalog.Flashbang),
	}
	if got := CountWeapon(team, catalog.Item(catalog.Flashbang)); got != 2 {
		t.Errorf("flash count = %d, want 2 (duplicates counted)", got)
	}
}

func TestCountTotalWeaponValueIgnoresGear(t *testing.T) {
	cat := catalog.New()
	team := []model.PlayerSnapshot{
		player("a", model.SideCT, "AK-47", catalog.KevlarVest, catalog.SmokeGrenade),
		player("b", model.SideCT, "AWP"),
	}
	want := 2700 + 4750
	if got := CountTotalWeaponValue(team, cat); got != want {
		t.Errorf("weapon value = %d, want %d (armor and utility excluded)", got, want)
	}
}

func TestCountItemsAddsThrownGrenades(t *testing.T) {
	// Two smokes already thrown, one still held: the round's utility
	// commitment is all three.
	team := []model.PlayerSnapshot{
		player("a", model.SideCT, catalog.SmokeGrenade),
		player("b", model.SideCT, "M4A4"),
	}
	throws := []model.GrenadeThrow{
		{Tick: 100, Thrower: "a", Type: catalog.SmokeGrenade},
		{Tick: 150, Thrower: "b", Type: catalog.SmokeGrenade},
		{Tick: 160, Thrower: "b", Type: catalog.Flashbang},
	}
	if got := CountItems(team, throws, catalog.Item(catalog.SmokeGrenade)); got != 3 {
		t.Errorf("smoke count = %d, want 3 (1 held + 2 thrown)", got)
	}
}

func TestCountItemsFirebombCategory(t *testing.T) {
	firebombs := catalog.Set{catalog.Molotov: true, catalog.Incendiary: true}
	team := []model.PlayerSnapshot{
		player("a", model.SideCT, catalog.Incendiary),
	}
	throws := []model.GrenadeThrow{
		{Tick: 10, Thrower: "a", Type: catalog.Molotov},
	}
	if got := CountItems(team, throws, catalog.Category(firebombs)); got != 2 {
		t.Errorf("firebomb count = %d, want 2", got)
	}
}
