package combat_test

import (
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
)

// scripted replays a fixed list of draws, then repeats fill forever.
type scripted struct {
	vals    []float64
	fill    float64
	pos     int
	pending []float64
}

func newScripted(fill float64, vals ...float64) *scripted {
	return &scripted{vals: vals, fill: fill}
}

func (s *scripted) Next() float64 {
	v := s.fill
	if s.pos < len(s.vals) {
		v = s.vals[s.pos]
	}
	s.pos++
	s.pending = append(s.pending, v)
	return v
}

func (s *scripted) Take() []float64 {
	d := s.pending
	s.pending = nil
	return d
}

func ctxWith(r combat.Random, settings combat.Settings) combat.ResolveContext {
	return combat.ResolveContext{Rand: r, Turn: 1, ActionOrderStart: 1, Settings: settings}
}

func noVariance() combat.Settings {
	s := combat.DefaultSettings()
	s.Variance = 0
	return s
}

func fighter(id string, isPlayer bool, hp, atk, def int) *combat.Actor {
	return combat.NewActor(combat.ActorInput{
		ID:       id,
		Name:     id,
		IsPlayer: isPlayer,
		Stats:    combat.CombatStats{MaxHP: hp, Attack: atk, Defense: def, MaxMana: 100, CritDamage: 150},
	})
}

func seeded(n int64) *rng.Recorder {
	return rng.NewRecorder(rng.New(rng.SeedFromInt(n)))
}

func ptr[T any](v T) *T { return &v }
