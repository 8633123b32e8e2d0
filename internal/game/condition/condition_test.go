package condition_test

import (
	"testing"

	"github.com/cory-johannsen/skirmish/internal/game/condition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"
)

func baseState() condition.State {
	return condition.State{
		PlayerHP: 100, PlayerMaxHP: 100,
		PlayerMana: 50, PlayerMaxMana: 100,
		Enemies: []condition.Vital{{HP: 30, MaxHP: 30}},
		Turn:    1,
	}
}

func TestAllHold_EmptyIsTrue(t *testing.T) {
	assert.True(t, condition.AllHold(nil, baseState()))
	assert.True(t, condition.AllHold([]condition.Condition{}, baseState()))
}

func TestHolds_PlayerHPBelow(t *testing.T) {
	c := condition.Condition{Type: condition.KindPlayerHPBelow, Value: 10}
	s := baseState()
	s.PlayerHP = 5
	assert.True(t, condition.Holds(c, s))
	s.PlayerHP = 10
	assert.True(t, condition.Holds(c, s), "boundary is inclusive")
	s.PlayerHP = 50
	assert.False(t, condition.Holds(c, s))
}

func TestHolds_EnemyHPBelow_UsesLowestLivingEnemy(t *testing.T) {
	c := condition.Condition{Type: condition.KindEnemyHPBelow, Value: 15}
	s := baseState()
	s.Enemies = []condition.Vital{{HP: 80, MaxHP: 100}, {HP: 10, MaxHP: 100}}
	assert.True(t, condition.Holds(c, s))

	s.Enemies = []condition.Vital{{HP: 80, MaxHP: 100}}
	assert.False(t, condition.Holds(c, s))

	// A dead enemy at 0% must not satisfy the condition.
	s.Enemies = []condition.Vital{{HP: 0, MaxHP: 100}, {HP: 80, MaxHP: 100}}
	assert.False(t, condition.Holds(c, s))
}

func TestHolds_EnemyHPBelow_NoEnemiesIsFalse(t *testing.T) {
	c := condition.Condition{Type: condition.KindEnemyHPBelow, Value: 100}
	s := baseState()
	s.Enemies = nil
	assert.False(t, condition.Holds(c, s))
	s.Enemies = []condition.Vital{{HP: 0, MaxHP: 10}}
	assert.False(t, condition.Holds(c, s))
}

func TestHolds_EnemyCount(t *testing.T) {
	c := condition.Condition{Type: condition.KindEnemyCount, Value: 1}
	s := baseState()
	s.Enemies = []condition.Vital{{HP: 5, MaxHP: 10}, {HP: 0, MaxHP: 10}}
	assert.True(t, condition.Holds(c, s))
	s.Enemies = append(s.Enemies, condition.Vital{HP: 1, MaxHP: 10})
	assert.False(t, condition.Holds(c, s))
}

func TestHolds_TurnCountAndMana(t *testing.T) {
	s := baseState()
	s.Turn = 3
	assert.True(t, condition.Holds(condition.Condition{Type: condition.KindTurnCount, Value: 3}, s))
	assert.False(t, condition.Holds(condition.Condition{Type: condition.KindTurnCount, Value: 4}, s))
	assert.True(t, condition.Holds(condition.Condition{Type: condition.KindManaAbove, Value: 50}, s))
	assert.False(t, condition.Holds(condition.Condition{Type: condition.KindManaAbove, Value: 51}, s))
}

func TestHolds_UnknownFailsClosed(t *testing.T) {
	assert.False(t, condition.Holds(condition.Condition{Type: condition.KindUnknown}, baseState()))
	assert.False(t, condition.Holds(condition.Condition{Type: condition.Kind(99)}, baseState()))
	assert.True(t, condition.Holds(condition.Condition{Type: condition.KindAlways}, baseState()))
}

func TestCondition_YAMLDecoding(t *testing.T) {
	var conds []condition.Condition
	err := yaml.Unmarshal([]byte(`
- type: player_hp_below
  value: 30
- type: summon_moon
  value: 1
`), &conds)
	require.NoError(t, err)
	require.Len(t, conds, 2)
	assert.Equal(t, condition.KindPlayerHPBelow, conds[0].Type)
	assert.Equal(t, 30.0, conds[0].Value)
	assert.Equal(t, condition.KindUnknown, conds[1].Type)
	assert.Equal(t, "player_hp_below(30)", conds[0].String())
}

func TestAllHold_Property_AlwaysIdentity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(0, 100).Draw(rt, "hp")
		threshold := rapid.Float64Range(0, 100).Draw(rt, "threshold")
		s := baseState()
		s.PlayerHP = hp
		c := condition.Condition{Type: condition.KindPlayerHPBelow, Value: threshold}
		always := condition.Condition{Type: condition.KindAlways}
		assert.Equal(rt, condition.Holds(c, s), condition.AllHold([]condition.Condition{c, always}, s))
	})
}
