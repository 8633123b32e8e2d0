// Package combat implements the deterministic turn-based battle resolver:
// basic attacks with combos and counters, active skills, pet abilities, and
// the engine that orders them into turns.
package combat

import (
	"maps"
	"math"
)

// CombatStats are the derived combat statistics of one actor.
// Percent fields are plain percentages (25 means 25%).
//
// Invariant: all percent fields are finite and non-negative.
type CombatStats struct {
	MaxHP       int     `yaml:"max_hp" json:"maxHp"`
	Attack      int     `yaml:"attack" json:"attack"`
	Defense     int     `yaml:"defense" json:"defense"`
	MaxMana     int     `yaml:"max_mana" json:"maxMana"`
	CritRate    float64 `yaml:"crit_rate" json:"critRate"`
	CritDamage  float64 `yaml:"crit_damage" json:"critDamage"`
	Lifesteal   float64 `yaml:"lifesteal" json:"lifesteal"`
	ArmorPen    float64 `yaml:"armor_pen" json:"armorPen"`
	DodgeRate   float64 `yaml:"dodge_rate" json:"dodgeRate"`
	Accuracy    float64 `yaml:"accuracy" json:"accuracy"`
	ComboRate   float64 `yaml:"combo_rate" json:"comboRate"`
	CounterRate float64 `yaml:"counter_rate" json:"counterRate"`
	Speed       float64 `yaml:"speed" json:"speed,omitempty"`
}

// ActorInput is the caller-owned description of one participant.
// Nil CurrentHP / CurrentMana default to the maximum.
type ActorInput struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	IsPlayer    bool           `yaml:"is_player" json:"isPlayer"`
	Stats       CombatStats    `yaml:"stats" json:"stats"`
	CurrentHP   *int           `yaml:"current_hp" json:"currentHp,omitempty"`
	CurrentMana *int           `yaml:"current_mana" json:"currentMana,omitempty"`
	Skills      []Skill        `yaml:"skills" json:"skills,omitempty"`
	Cooldowns   map[string]int `yaml:"cooldowns" json:"cooldowns,omitempty"`
	Pet         *Pet           `yaml:"pet" json:"pet,omitempty"`
}

// Actor is the engine-owned working state of one participant.
//
// Invariant: 0 <= CurrentHP <= Stats.MaxHP; 0 <= CurrentMana <= Stats.MaxMana.
type Actor struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	IsPlayer    bool           `json:"isPlayer"`
	Stats       CombatStats    `json:"stats"`
	CurrentHP   int            `json:"currentHp"`
	CurrentMana int            `json:"currentMana"`
	Skills      []Skill        `json:"skills,omitempty"`
	Cooldowns   map[string]int `json:"cooldowns"`
	Pet         *Pet           `json:"pet,omitempty"`
}

// NewActor builds a working Actor from in, deep-copying every reference so
// that later mutation never reaches the caller's record.
//
// Postcondition: CurrentHP and CurrentMana are clamped into their valid ranges.
func NewActor(in ActorInput) *Actor {
	a := &Actor{
		ID:        in.ID,
		Name:      in.Name,
		IsPlayer:  in.IsPlayer,
		Stats:     in.Stats,
		CurrentHP: in.Stats.MaxHP,
		Cooldowns: make(map[string]int, len(in.Cooldowns)),
	}
	if in.CurrentHP != nil {
		a.CurrentHP = clampInt(*in.CurrentHP, 0, in.Stats.MaxHP)
	}
	a.CurrentMana = in.Stats.MaxMana
	if in.CurrentMana != nil {
		a.CurrentMana = clampInt(*in.CurrentMana, 0, in.Stats.MaxMana)
	}
	maps.Copy(a.Cooldowns, in.Cooldowns)
	if len(in.Skills) > 0 {
		a.Skills = make([]Skill, len(in.Skills))
		for i, s := range in.Skills {
			a.Skills[i] = s.clone()
		}
	}
	if in.Pet != nil {
		a.Pet = in.Pet.clone()
	}
	return a
}

// Alive reports whether CurrentHP > 0.
func (a *Actor) Alive() bool { return a.CurrentHP > 0 }

// HPPercent returns 100*CurrentHP/MaxHP, or 0 when MaxHP <= 0.
func (a *Actor) HPPercent() float64 {
	if a.Stats.MaxHP <= 0 {
		return 0
	}
	return 100 * float64(a.CurrentHP) / float64(a.Stats.MaxHP)
}

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
// Precondition: amount must be >= 0.
// Postcondition: CurrentHP >= 0.
func (a *Actor) ApplyDamage(amount int) {
	a.CurrentHP -= amount
	if a.CurrentHP < 0 {
		a.CurrentHP = 0
	}
}

// Heal raises CurrentHP by amount, capped at MaxHP, and returns the HP actually restored.
//
// Postcondition: CurrentHP <= Stats.MaxHP; return value >= 0.
func (a *Actor) Heal(amount int) int {
	if amount <= 0 || a.CurrentHP >= a.Stats.MaxHP {
		return 0
	}
	before := a.CurrentHP
	if amount >= a.Stats.MaxHP-a.CurrentHP {
		a.CurrentHP = a.Stats.MaxHP
	} else {
		a.CurrentHP += amount
	}
	return a.CurrentHP - before
}

// RegenMana restores amount mana capped at MaxMana.
func (a *Actor) RegenMana(amount int) {
	if amount >= a.Stats.MaxMana-a.CurrentMana {
		a.CurrentMana = max(0, a.Stats.MaxMana)
		return
	}
	a.CurrentMana = clampInt(a.CurrentMana+amount, 0, a.Stats.MaxMana)
}

// TickCooldowns decrements every positive skill cooldown, and every pet
// ability cooldown, by one.
func (a *Actor) TickCooldowns() {
	tick(a.Cooldowns)
	if a.Pet != nil {
		tick(a.Pet.Cooldowns)
	}
}

func tick(cds map[string]int) {
	for id, cd := range cds {
		if cd > 0 {
			cds[id] = cd - 1
		}
	}
}

// snapshot returns a deep copy of a for the result.
func (a *Actor) snapshot() Actor {
	out := *a
	out.Cooldowns = maps.Clone(a.Cooldowns)
	if out.Cooldowns == nil {
		out.Cooldowns = map[string]int{}
	}
	if a.Skills != nil {
		out.Skills = make([]Skill, len(a.Skills))
		for i, s := range a.Skills {
			out.Skills[i] = s.clone()
		}
	}
	if a.Pet != nil {
		out.Pet = a.Pet.clone()
	}
	return out
}

// MaxAmount bounds every damage, healing and mana amount computed from
// floating-point formulas.
const MaxAmount = math.MaxInt32

// FloorInt floors v and saturates it into [-MaxAmount, MaxAmount]; NaN maps
// to 0. Every float-derived amount is converted here, never with int(),
// so results do not depend on the platform's overflow behavior.
func FloorInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= MaxAmount:
		return MaxAmount
	case v <= -MaxAmount:
		return -MaxAmount
	}
	return int(math.Floor(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func livingActors(actors []*Actor) []*Actor {
	var alive []*Actor
	for _, a := range actors {
		if a.Alive() {
			alive = append(alive, a)
		}
	}
	return alive
}

func anyAlive(actors []*Actor) bool {
	for _, a := range actors {
		if a.Alive() {
			return true
		}
	}
	return false
}

// lowestHPPercent returns the living actor with the lowest HP percentage,
// preferring the earliest on ties, or nil when none is alive.
func lowestHPPercent(actors []*Actor) *Actor {
	var best *Actor
	for _, a := range actors {
		if !a.Alive() {
			continue
		}
		if best == nil || a.HPPercent() < best.HPPercent() {
			best = a
		}
	}
	return best
}

// pickRandom returns a uniformly random element of actors using one draw,
// or nil when actors is empty (no draw is made).
func pickRandom(actors []*Actor, r Random) *Actor {
	if len(actors) == 0 {
		return nil
	}
	i := int(r.Next() * float64(len(actors)))
	if i >= len(actors) {
		i = len(actors) - 1
	}
	return actors[i]
}
