package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
	"github.com/cory-johannsen/skirmish/internal/sim"
)

func duel(seed int64) combat.RunParams {
	return combat.RunParams{
		Players: []combat.ActorInput{{ID: "hero", Name: "Hero", IsPlayer: true,
			Stats: combat.CombatStats{MaxHP: 100, Attack: 10, Defense: 2, CritRate: 10, CritDamage: 150, ComboRate: 20}}},
		Enemies: []combat.ActorInput{{ID: "goblin", Name: "Goblin",
			Stats: combat.CombatStats{MaxHP: 30, Attack: 5, Defense: 1, CritDamage: 150}}},
		Seed: rng.SeedFromInt(seed),
	}
}

func TestRepeat_ConsecutiveSeeds(t *testing.T) {
	jobs := sim.Repeat("duel", duel(100), 3)
	require.Len(t, jobs, 3)
	for i, j := range jobs {
		assert.Equal(t, uint32(100+i), j.Params.Seed.Resolve())
		assert.True(t, j.Params.Seed.IsSet())
	}
	assert.Equal(t, "duel#2", jobs[2].Name)
	assert.Nil(t, sim.Repeat("duel", duel(1), 0))
}

func TestRepeat_AbsentSeedIsGenerated(t *testing.T) {
	base := duel(0)
	base.Seed = rng.Seed{}
	for _, j := range sim.Repeat("duel", base, 4) {
		assert.True(t, j.Params.Seed.IsSet())
	}
}

func TestRunner_MatchesSequentialRuns(t *testing.T) {
	eng := combat.NewEngine(combat.DefaultSettings(), nil)
	jobs := sim.Repeat("duel", duel(42), 25)

	results, err := sim.NewRunner(eng, 8, zaptest.NewLogger(t)).Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, jobs[i].Name, r.Name)
		assert.Equal(t, eng.Run(jobs[i].Params), r.Result)
	}
}

func TestRunner_WorkerCountDoesNotChangeResults(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		eng := combat.NewEngine(combat.DefaultSettings(), nil)
		jobs := sim.Repeat("duel", duel(rapid.Int64().Draw(rt, "seed")), rapid.IntRange(1, 12).Draw(rt, "n"))
		workers := rapid.IntRange(0, 6).Draw(rt, "workers")

		one, err := sim.NewRunner(eng, 1, nil).Run(context.Background(), jobs)
		require.NoError(rt, err)
		many, err := sim.NewRunner(eng, workers, nil).Run(context.Background(), jobs)
		require.NoError(rt, err)
		assert.Equal(rt, one, many)
	})
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.NewRunner(combat.NewEngine(combat.DefaultSettings(), nil), 2, nil).Run(ctx, sim.Repeat("duel", duel(1), 5))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	dmg := 7
	results := []sim.Result{
		{Result: combat.RunResult{Outcome: combat.Victory, Turns: 2, Logs: []combat.LogEntry{{Damage: &dmg}, {}}}},
		{Result: combat.RunResult{Outcome: combat.Defeat, Turns: 6}},
		{Result: combat.RunResult{Outcome: combat.Victory, Turns: 4, Logs: []combat.LogEntry{{Damage: &dmg}}}},
	}

	s := sim.Summarize(results)

	assert.Equal(t, 3, s.Battles)
	assert.Equal(t, 2, s.Victories)
	assert.Equal(t, 1, s.Defeats)
	assert.Equal(t, 66.67, s.WinRate)
	assert.Equal(t, 4.0, s.MeanTurns)
	assert.Equal(t, 2, s.MinTurns)
	assert.Equal(t, 6, s.MaxTurns)
	assert.Equal(t, 4.67, s.MeanDamage)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, sim.Summary{}, sim.Summarize(nil))
}
