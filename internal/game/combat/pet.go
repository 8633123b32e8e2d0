package combat

import (
	"maps"
	"slices"
)

// AbilityType selects what a pet ability does.
type AbilityType int

const (
	AbilityUnknown AbilityType = iota
	AbilityAttack
	AbilityHeal
	AbilityBuff
	AbilityDebuff
	AbilityUtility
)

var abilityTypeNames = map[AbilityType]string{
	AbilityAttack:  "attack",
	AbilityHeal:    "heal",
	AbilityBuff:    "buff",
	AbilityDebuff:  "debuff",
	AbilityUtility: "utility",
}

func (t AbilityType) String() string { return enumName(abilityTypeNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t AbilityType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to AbilityUnknown.
func (t *AbilityType) UnmarshalText(b []byte) error {
	*t, _ = parseEnum(abilityTypeNames, string(b))
	return nil
}

// PetStats are a companion's own attributes. They double as the scaling
// coefficient vector of an attack ability.
type PetStats struct {
	Strength     float64 `yaml:"strength" json:"strength,omitempty"`
	Intelligence float64 `yaml:"intelligence" json:"intelligence,omitempty"`
	Dexterity    float64 `yaml:"dexterity" json:"dexterity,omitempty"`
	Vitality     float64 `yaml:"vitality" json:"vitality,omitempty"`
	Luck         float64 `yaml:"luck" json:"luck,omitempty"`
}

// Dot returns Σ s[i]·coef[i] in a fixed field order.
func (s PetStats) Dot(coef PetStats) float64 {
	return s.Strength*coef.Strength +
		s.Intelligence*coef.Intelligence +
		s.Dexterity*coef.Dexterity +
		s.Vitality*coef.Vitality +
		s.Luck*coef.Luck
}

// StatDelta is a flat bonus a buff adds to a target's stats.
type StatDelta struct {
	Attack      int     `yaml:"attack" json:"attack,omitempty"`
	Defense     int     `yaml:"defense" json:"defense,omitempty"`
	CritRate    float64 `yaml:"crit_rate" json:"critRate,omitempty"`
	CritDamage  float64 `yaml:"crit_damage" json:"critDamage,omitempty"`
	DodgeRate   float64 `yaml:"dodge_rate" json:"dodgeRate,omitempty"`
	Accuracy    float64 `yaml:"accuracy" json:"accuracy,omitempty"`
	Lifesteal   float64 `yaml:"lifesteal" json:"lifesteal,omitempty"`
	ArmorPen    float64 `yaml:"armor_pen" json:"armorPen,omitempty"`
	ComboRate   float64 `yaml:"combo_rate" json:"comboRate,omitempty"`
	CounterRate float64 `yaml:"counter_rate" json:"counterRate,omitempty"`
	Speed       float64 `yaml:"speed" json:"speed,omitempty"`
}

// IsZero reports whether d changes nothing.
func (d StatDelta) IsZero() bool { return d == StatDelta{} }

// applyTo adds d to s. Percent fields never drop below zero.
func (d StatDelta) applyTo(s *CombatStats) {
	s.Attack = max(0, s.Attack+d.Attack)
	s.Defense = max(0, s.Defense+d.Defense)
	s.CritRate = max(0, s.CritRate+d.CritRate)
	s.CritDamage = max(0, s.CritDamage+d.CritDamage)
	s.DodgeRate = max(0, s.DodgeRate+d.DodgeRate)
	s.Accuracy = max(0, s.Accuracy+d.Accuracy)
	s.Lifesteal = max(0, s.Lifesteal+d.Lifesteal)
	s.ArmorPen = max(0, s.ArmorPen+d.ArmorPen)
	s.ComboRate = max(0, s.ComboRate+d.ComboRate)
	s.CounterRate = max(0, s.CounterRate+d.CounterRate)
	s.Speed = max(0, s.Speed+d.Speed)
}

// StatusEffect is a secondary effect an attack ability reports. Status effects
// are descriptive only; nothing tracks them after the log entry.
type StatusEffect struct {
	Name     string   `yaml:"name" json:"name"`
	// Chance is the percent chance to apply. Omitted or >= 100 always
	// applies without a draw; <= 0 never applies.
	Chance   *float64 `yaml:"chance" json:"chance,omitempty"`
	Duration int      `yaml:"duration" json:"duration,omitempty"`
}

// applies rolls for the effect when its chance is strictly between 0 and 100.
func (se StatusEffect) applies(r Random) bool {
	switch {
	case se.Chance == nil || *se.Chance >= 100:
		return true
	case *se.Chance <= 0:
		return false
	}
	return roll(r, *se.Chance)
}

// PetEffect is the payload of a pet ability.
type PetEffect struct {
	// Multiplier scales the owner's attack; omitted means 1. Zero leaves
	// only the pet stat scaling.
	Multiplier    *float64       `yaml:"multiplier" json:"multiplier,omitempty"`
	DamageType    DamageType     `yaml:"damage_type" json:"damageType"`
	Scaling       PetStats       `yaml:"scaling" json:"scaling"`
	HealFlat      float64        `yaml:"heal_flat" json:"healFlat,omitempty"`
	HealPercent   float64        `yaml:"heal_percent" json:"healPercent,omitempty"`
	Buff          StatDelta      `yaml:"buff" json:"buff"`
	StatusEffects []StatusEffect `yaml:"status_effects" json:"statusEffects,omitempty"`
}

// PetAbility is one ability of a companion.
type PetAbility struct {
	ID         string      `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Type       AbilityType `yaml:"type" json:"type"`
	TargetType TargetType  `yaml:"target_type" json:"targetType"`
	Cooldown   int         `yaml:"cooldown" json:"cooldown"`
	ManaCost   int         `yaml:"mana_cost" json:"manaCost"`
	Effect     PetEffect   `yaml:"effect" json:"effect"`
}

// Pet is a companion bound to a player. Its mana and cooldowns live here,
// on the owner, and it acts only during the owner's pet phase.
type Pet struct {
	ID        string         `yaml:"id" json:"id"`
	Name      string         `yaml:"name" json:"name"`
	Level     int            `yaml:"level" json:"level"`
	Stats     PetStats       `yaml:"stats" json:"stats"`
	Mana      int            `yaml:"mana" json:"mana"`
	MaxMana   int            `yaml:"max_mana" json:"maxMana"`
	Abilities []PetAbility   `yaml:"abilities" json:"abilities,omitempty"`
	Cooldowns map[string]int `yaml:"cooldowns" json:"cooldowns,omitempty"`
}

// ready reports whether ab is off cooldown and affordable.
func (p *Pet) ready(ab PetAbility) bool {
	return p.Cooldowns[ab.ID] <= 0 && p.Mana >= ab.ManaCost
}

// firstReady returns the first ability in list order that is ready.
func (p *Pet) firstReady() (PetAbility, bool) {
	for _, ab := range p.Abilities {
		if p.ready(ab) {
			return ab, true
		}
	}
	return PetAbility{}, false
}

func (p *Pet) clone() *Pet {
	out := *p
	out.Cooldowns = maps.Clone(p.Cooldowns)
	if out.Cooldowns == nil {
		out.Cooldowns = map[string]int{}
	}
	if p.Abilities != nil {
		out.Abilities = make([]PetAbility, len(p.Abilities))
		for i, ab := range p.Abilities {
			ab.Effect.Multiplier = cloneFloat(ab.Effect.Multiplier)
			ab.Effect.StatusEffects = slices.Clone(ab.Effect.StatusEffects)
			for j, se := range ab.Effect.StatusEffects {
				ab.Effect.StatusEffects[j].Chance = cloneFloat(se.Chance)
			}
			out.Abilities[i] = ab
		}
	}
	return &out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
