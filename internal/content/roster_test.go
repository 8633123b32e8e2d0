package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/content"
	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/condition"
)

const sampleRoster = `
name: sample
seed: "dawn raid"
max_turns: 5
library:
  - id: smite
    name: Smite
    type: active
    mana_cost: 5
    target_type: enemy
    damage_type: magical
    conditions:
      - {type: enemy_hp_below, value: 50}
    effects:
      1: {damage: 12}
    level: 1
players:
  - name: Cleric
    core:
      attributes: {str: 5, int: 10, dex: 5, vit: 8, luk: 2}
    skill_ids: [smite]
    current_hp: 40
enemies:
  - id: rat
    name: Rat
    stats: {max_hp: 20, attack: 4, defense: 0, crit_damage: 150}
`

func TestLoadRosterFromBytes(t *testing.T) {
	r, err := content.LoadRosterFromBytes([]byte(sampleRoster))
	require.NoError(t, err)

	assert.Equal(t, "sample", r.Name)
	assert.Equal(t, "dawn raid", r.Seed.String())
	assert.Equal(t, 5, r.MaxTurns)
	require.Len(t, r.Library, 1)
	assert.Equal(t, combat.SkillActive, r.Library[0].Type)
	assert.Equal(t, combat.DamageMagical, r.Library[0].DamageType)
	assert.Equal(t, condition.KindEnemyHPBelow, r.Library[0].Conditions[0].Type)
}

func TestRoster_Params(t *testing.T) {
	r, err := content.LoadRosterFromBytes([]byte(sampleRoster))
	require.NoError(t, err)
	k := character.DefaultConstants()

	p, err := r.Params(k)
	require.NoError(t, err)

	require.Len(t, p.Players, 1)
	cleric := p.Players[0]
	assert.True(t, cleric.IsPlayer)
	assert.NotEmpty(t, cleric.ID, "a missing id is generated")
	assert.Equal(t, character.Derive(*r.Players[0].Core, k), cleric.Stats)
	require.Len(t, cleric.Skills, 1)
	assert.Equal(t, "smite", cleric.Skills[0].ID)
	assert.Equal(t, 40, *cleric.CurrentHP)

	require.Len(t, p.Enemies, 1)
	assert.Equal(t, "rat", p.Enemies[0].ID)
	assert.False(t, p.Enemies[0].IsPlayer)
	assert.Equal(t, 20, p.Enemies[0].Stats.MaxHP)
	assert.Equal(t, r.Seed, p.Seed)
}

func TestRoster_GeneratedIDsAreStable(t *testing.T) {
	a, err := content.LoadRosterFromBytes([]byte(sampleRoster))
	require.NoError(t, err)
	b, err := content.LoadRosterFromBytes([]byte(sampleRoster))
	require.NoError(t, err)

	pa, err := a.Params(character.DefaultConstants())
	require.NoError(t, err)
	pb, err := b.Params(character.DefaultConstants())
	require.NoError(t, err)
	assert.Equal(t, pa.Players[0].ID, pb.Players[0].ID)
}

func TestRoster_DuplicateNamesGetDistinctIDs(t *testing.T) {
	r := &content.Roster{
		Name: "twins",
		Players: []content.Combatant{
			{Name: "Twin", Stats: &combat.CombatStats{MaxHP: 10}},
			{Name: "Twin", Stats: &combat.CombatStats{MaxHP: 10}},
		},
	}
	require.NoError(t, r.Validate())
	p, err := r.Params(character.DefaultConstants())
	require.NoError(t, err)
	assert.NotEqual(t, p.Players[0].ID, p.Players[1].ID)
}

func TestLoadRosterFromBytes_RejectsUnknownFields(t *testing.T) {
	_, err := content.LoadRosterFromBytes([]byte("name: x\nplayers: []\nsurprise: 1\n"))
	assert.Error(t, err)
}

func TestRoster_Validate(t *testing.T) {
	tests := []struct {
		name   string
		roster content.Roster
		want   string
	}{
		{
			name:   "no players",
			roster: content.Roster{Name: "r"},
			want:   "players must not be empty",
		},
		{
			name:   "stats and core",
			roster: content.Roster{Players: []content.Combatant{{Name: "a", Stats: &combat.CombatStats{MaxHP: 1}, Core: &character.Core{}}}},
			want:   "exactly one of stats or core",
		},
		{
			name:   "neither stats nor core",
			roster: content.Roster{Players: []content.Combatant{{Name: "a"}}},
			want:   "exactly one of stats or core",
		},
		{
			name:   "unknown skill",
			roster: content.Roster{Players: []content.Combatant{{Name: "a", Core: &character.Core{}, SkillIDs: []string{"nope"}}}},
			want:   `unknown skill id "nope"`,
		},
		{
			name:   "missing name",
			roster: content.Roster{Players: []content.Combatant{{Core: &character.Core{}}}},
			want:   "name must not be empty",
		},
		{
			name: "duplicate library id",
			roster: content.Roster{
				Library: []combat.Skill{{ID: "a"}, {ID: "a"}},
				Players: []content.Combatant{{Name: "a", Core: &character.Core{}}},
			},
			want: "duplicate skill id",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.roster.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRoster_ParamsRejectsInvalidBattle(t *testing.T) {
	r := &content.Roster{
		Players: []content.Combatant{{ID: "x", Name: "a", Stats: &combat.CombatStats{MaxHP: 1}}},
		Enemies: []content.Combatant{{ID: "x", Name: "b", Stats: &combat.CombatStats{MaxHP: 1}}},
	}
	require.NoError(t, r.Validate())
	_, err := r.Params(character.DefaultConstants())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestLoadRosters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(sampleRoster), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("players:\n  - {name: Solo, stats: {max_hp: 5}}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	rosters, err := content.LoadRosters(dir)
	require.NoError(t, err)
	require.Len(t, rosters, 2)
	assert.Equal(t, "a", rosters[0].Name, "unnamed rosters take the file name")
	assert.Equal(t, "sample", rosters[1].Name)
}

func TestLoadRosters_Empty(t *testing.T) {
	_, err := content.LoadRosters(t.TempDir())
	assert.ErrorIs(t, err, content.ErrNoRosters)
}

func TestLoadRosters_ShippedContent(t *testing.T) {
	rosters, err := content.LoadRosters(filepath.Join("..", "..", "content", "rosters"))
	require.NoError(t, err)
	for _, r := range rosters {
		p, err := r.Params(character.DefaultConstants())
		require.NoError(t, err, "roster %q", r.Name)
		res := combat.Run(p)
		assert.NotEmpty(t, res.Logs, "roster %q", r.Name)
	}
}
