// Package decoder reads CS2 demo files and captures the raw per-round
// state the feature extractor consumes.
package decoder

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	demoinfocs "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs"
	common "github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/common"
	"github.com/markus-wa/demoinfocs-golang/v4/pkg/demoinfocs/events"
	"github.com/rs/zerolog"

	"github.com/TaiZo1/cs2-win-prediction/internal/catalog"
	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// snapshotDelaySeconds is how long after freeze-time end team state is
// sampled, long enough for buys to settle.
const snapshotDelaySeconds = 2

// Decode parses the demo at path in a single pass and returns a RawMatch.
func Decode(path string, cat *catalog.Catalog, log zerolog.Logger) (*model.RawMatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open demo: %w", err)
	}
	defer f.Close()

	// Hash file for idempotency key.
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("hash demo: %w", err)
	}
	matchID := fmt.Sprintf("%x", h.Sum(nil))

	// Seek back to start for the parser.
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek demo: %w", err)
	}

	p := demoinfocs.NewParser(f)
	defer p.Close()

	raw := &model.RawMatch{MatchID: matchID}
	log = log.With().Str("match", matchID[:12]).Logger()

	var (
		current       *model.RawRound
		buyCaptured   bool
		freezeEnded   bool
		snapshotTick  int
		sampledEnts   map[int]bool
		roundFinished bool
	)

	// RoundStart: open a new pending round and take the start snapshot.
	p.RegisterEventHandler(func(e events.RoundStart) {
		if p.GameState().IsWarmupPeriod() {
			return
		}
		number := 1
		if current != nil && !roundFinished {
			// Round started but never ended (e.g. abandoned demo tail):
			// drop it rather than emit a partial record.
			log.Debug().Int("round", current.Number).Msg("discarding unfinished round")
			number = current.Number
		} else if current != nil {
			number = current.Number + 1
		}
		tick := p.GameState().IngameTick()
		current = &model.RawRound{
			Number:         number,
			StartTick:      tick,
			FreezeEndTick:  tick, // updated by RoundFreezetimeEnd
			StartSnapshots: capturePlayers(p, cat, log),
		}
		buyCaptured = false
		freezeEnded = false
		roundFinished = false
		sampledEnts = make(map[int]bool)
	})

	p.RegisterEventHandler(func(e events.RoundFreezetimeEnd) {
		if current == nil {
			return
		}
		current.FreezeEndTick = p.GameState().IngameTick()
		snapshotTick = current.FreezeEndTick + int(snapshotDelaySeconds*tickRateOr64(p))
		freezeEnded = true
	})

	// FrameDone drives the two time-based captures: the buy snapshot at
	// freeze-end + 2s and the projectile samples inside that window.
	p.RegisterEventHandler(func(e events.FrameDone) {
		if current == nil || !freezeEnded || buyCaptured {
			return
		}
		tick := p.GameState().IngameTick()
		sampleProjectiles(p, raw, sampledEnts, tick)
		if tick >= snapshotTick {
			current.BuySnapshots = capturePlayers(p, cat, log)
			buyCaptured = true
		}
	})

	// RoundEnd: record the declared winner and the living players. The
	// official end fires a few seconds later; some demos cut before it,
	// so the round is finalized here and refined at RoundEndOfficial.
	p.RegisterEventHandler(func(e events.RoundEnd) {
		if current == nil || roundFinished {
			return
		}
		if !buyCaptured {
			// Short rounds can end inside the snapshot window.
			current.BuySnapshots = capturePlayers(p, cat, log)
			buyCaptured = true
		}
		current.OfficialEndTick = p.GameState().IngameTick()
		current.WinnerLabel = winnerLabel(e.Winner)
		current.EndSurvivors = capturePlayers(p, cat, log)
		raw.Rounds = append(raw.Rounds, *current)
		roundFinished = true
	})

	// RoundEndOfficial is the authoritative end of the round. Players
	// exit-killed between the winner call and this event are no longer
	// alive here, so the survivor snapshot taken at RoundEnd is replaced
	// with one that excludes them.
	p.RegisterEventHandler(func(e events.RoundEndOfficial) {
		finalizeOfficialEnd(raw, p.GameState().IngameTick(), capturePlayers(p, cat, log))
	})

	if err := p.ParseToEnd(); err != nil {
		return nil, fmt.Errorf("parse demo: %w", err)
	}

	raw.MapName = p.Header().MapName
	raw.TickRate = p.TickRate()

	log.Info().
		Str("map", raw.MapName).
		Int("rounds", len(raw.Rounds)).
		Int("projectile_samples", len(raw.Projectiles)).
		Msg("demo decoded")
	return raw, nil
}

// finalizeOfficialEnd stamps the official end tick on the last recorded
// round and replaces its survivor snapshot with the one taken at that
// moment. A no-op before any round has been recorded.
func finalizeOfficialEnd(raw *model.RawMatch, tick int, survivors []model.PlayerSnapshot) {
	if len(raw.Rounds) == 0 {
		return
	}
	last := &raw.Rounds[len(raw.Rounds)-1]
	last.OfficialEndTick = tick
	last.EndSurvivors = survivors
}

func tickRateOr64(p demoinfocs.Parser) float64 {
	if tr := p.TickRate(); tr > 0 {
		return tr
	}
	return 64
}

// capturePlayers snapshots every living player currently on a side.
func capturePlayers(p demoinfocs.Parser, cat *catalog.Catalog, log zerolog.Logger) []model.PlayerSnapshot {
	gs := p.GameState()
	ctScore := gs.TeamCounterTerrorists().Score()
	tScore := gs.TeamTerrorists().Score()

	var out []model.PlayerSnapshot
	for _, pl := range gs.Participants().Playing() {
		if pl == nil || !pl.IsAlive() {
			continue
		}
		side := sideFromCommon(pl.Team)
		if side == model.SideUnknown {
			continue
		}
		score := tScore
		if side == model.SideCT {
			score = ctScore
		}
		var inv []string
		for _, weap := range pl.Weapons() {
			if weap == nil {
				continue
			}
			inv = append(inv, canonicalItemName(weap.Type.String(), log, cat))
		}
		out = append(out, model.PlayerSnapshot{
			Name:       pl.Name,
			Side:       side,
			Balance:    pl.Money(),
			EquipValue: pl.EquipmentValueCurrent(),
			ArmorValue: pl.Armor(),
			HasHelmet:  pl.HasHelmet(),
			HasDefuser: pl.HasDefuseKit(),
			Inventory:  inv,
			TeamScore:  score,
		})
	}
	return out
}

// sampleProjectiles records every grenade projectile in flight at the
// given tick. Entities already sampled this round are skipped; the
// extractor only needs each grenade's first observation.
func sampleProjectiles(p demoinfocs.Parser, raw *model.RawMatch, seen map[int]bool, tick int) {
	for _, proj := range p.GameState().GrenadeProjectiles() {
		if proj == nil || proj.Entity == nil {
			continue
		}
		id := proj.Entity.ID()
		if seen[id] {
			continue
		}
		seen[id] = true

		thrower := ""
		if proj.Thrower != nil {
			thrower = proj.Thrower.Name
		} else if proj.Owner != nil {
			thrower = proj.Owner.Name
		}
		pos := proj.Position()
		raw.Projectiles = append(raw.Projectiles, model.ProjectileSample{
			Tick:     tick,
			EntityID: id,
			Thrower:  thrower,
			RawType:  proj.Entity.ServerClass().Name(),
			X:        pos.X,
			Y:        pos.Y,
			Z:        pos.Z,
		})
	}
}

func sideFromCommon(t common.Team) model.Side {
	switch t {
	case common.TeamTerrorists:
		return model.SideT
	case common.TeamCounterTerrorists:
		return model.SideCT
	default:
		return model.SideUnknown
	}
}

func winnerLabel(t common.Team) string {
	switch t {
	case common.TeamCounterTerrorists:
		return "CT"
	case common.TeamTerrorists:
		return "T"
	default:
		return ""
	}
}
