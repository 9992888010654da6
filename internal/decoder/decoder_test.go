package decoder

import (
	"testing"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

func TestFinalizeOfficialEndReplacesSurvivors(t *testing.T) {
	// Winner-call snapshot: two CTs still standing.
	atRoundEnd := []model.PlayerSnapshot{
		{Name: "ct1", Side: model.SideCT, Inventory: []string{"M4A4"}},
		{Name: "ct2", Side: model.SideCT, Inventory: []string{"AWP"}},
	}
	raw := &model.RawMatch{
		Rounds: []model.RawRound{
			{Number: 1, OfficialEndTick: 5000, EndSurvivors: atRoundEnd},
		},
	}

	// ct2 is exit-killed before the official end fires.
	atOfficialEnd := []model.PlayerSnapshot{
		{Name: "ct1", Side: model.SideCT, Inventory: []string{"M4A4"}},
	}
	finalizeOfficialEnd(raw, 5420, atOfficialEnd)

	got := raw.Rounds[0]
	if got.OfficialEndTick != 5420 {
		t.Errorf("OfficialEndTick = %d, want 5420", got.OfficialEndTick)
	}
	if len(got.EndSurvivors) != 1 || got.EndSurvivors[0].Name != "ct1" {
		t.Errorf("EndSurvivors = %+v, want only ct1", got.EndSurvivors)
	}
}

func TestFinalizeOfficialEndNoRounds(t *testing.T) {
	raw := &model.RawMatch{}
	// Must not panic before the first round is recorded.
	finalizeOfficialEnd(raw, 100, nil)
	if len(raw.Rounds) != 0 {
		t.Errorf("rounds = %d, want 0", len(raw.Rounds))
	}
}
