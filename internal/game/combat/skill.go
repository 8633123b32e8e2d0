package combat

import (
	"slices"

	"github.com/cory-johannsen/skirmish/internal/game/condition"
)

// SkillType distinguishes how a skill is activated. Only SkillActive is ever cast.
type SkillType int

const (
	SkillUnknown SkillType = iota
	SkillPassive
	SkillActive
	SkillToggle
)

var skillTypeNames = map[SkillType]string{
	SkillPassive: "passive",
	SkillActive:  "active",
	SkillToggle:  "toggle",
}

func (t SkillType) String() string { return enumName(skillTypeNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t SkillType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to SkillUnknown.
func (t *SkillType) UnmarshalText(b []byte) error {
	*t, _ = parseEnum(skillTypeNames, string(b))
	return nil
}

// TargetType selects who a skill or pet ability affects.
type TargetType int

const (
	TargetUnknown TargetType = iota
	TargetEnemy
	TargetAllEnemies
	TargetAlly
	TargetAllAllies
	TargetSelf
)

var targetTypeNames = map[TargetType]string{
	TargetEnemy:      "enemy",
	TargetAllEnemies: "all_enemies",
	TargetAlly:       "ally",
	TargetAllAllies:  "all_allies",
	TargetSelf:       "self",
}

func (t TargetType) String() string { return enumName(targetTypeNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t TargetType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to TargetUnknown.
func (t *TargetType) UnmarshalText(b []byte) error {
	*t, _ = parseEnum(targetTypeNames, string(b))
	return nil
}

// DamageType selects how a target's defense mitigates damage.
// The zero value is physical.
type DamageType int

const (
	DamagePhysical DamageType = iota
	DamageMagical
	DamageTrue
)

var damageTypeNames = map[DamageType]string{
	DamagePhysical: "physical",
	DamageMagical:  "magical",
	DamageTrue:     "true",
}

func (t DamageType) String() string { return enumName(damageTypeNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t DamageType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to physical.
func (t *DamageType) UnmarshalText(b []byte) error {
	*t, _ = parseEnum(damageTypeNames, string(b))
	return nil
}

// SkillEffect is the per-level payload of a skill. Exactly which fields are set
// decides what a cast does: damage first, then healing, then debuff.
type SkillEffect struct {
	Damage         *float64 `yaml:"damage" json:"damage,omitempty"`
	Healing        *float64 `yaml:"healing" json:"healing,omitempty"`
	DebuffDuration *int     `yaml:"debuff_duration" json:"debuffDuration,omitempty"`
}

// Skill is an active, passive or toggle ability owned by an actor.
type Skill struct {
	ID             string                `yaml:"id" json:"id"`
	Name           string                `yaml:"name" json:"name"`
	Type           SkillType             `yaml:"type" json:"type"`
	ManaCost       int                   `yaml:"mana_cost" json:"manaCost"`
	Cooldown       int                   `yaml:"cooldown" json:"cooldown"`
	TargetType     TargetType            `yaml:"target_type" json:"targetType"`
	DamageType     DamageType            `yaml:"damage_type" json:"damageType"`
	DamageFormula  string                `yaml:"damage_formula" json:"damageFormula,omitempty"`
	HealingFormula string                `yaml:"healing_formula" json:"healingFormula,omitempty"`
	Conditions     []condition.Condition `yaml:"conditions" json:"conditions,omitempty"`
	Effects        map[int]SkillEffect   `yaml:"effects" json:"effects,omitempty"`
	Level          int                   `yaml:"level" json:"level"`
}

// EffectFor returns the effect for the skill's current level, falling back to
// level 1.
//
// Postcondition: ok is false iff neither Effects[Level] nor Effects[1] exists.
func (s Skill) EffectFor() (SkillEffect, bool) {
	if e, ok := s.Effects[s.Level]; ok {
		return e, true
	}
	e, ok := s.Effects[1]
	return e, ok
}

func (s Skill) clone() Skill {
	out := s
	out.Conditions = slices.Clone(s.Conditions)
	if s.Effects != nil {
		out.Effects = make(map[int]SkillEffect, len(s.Effects))
		for lvl, e := range s.Effects {
			out.Effects[lvl] = e.clone()
		}
	}
	return out
}

func (e SkillEffect) clone() SkillEffect {
	out := SkillEffect{}
	if e.Damage != nil {
		v := *e.Damage
		out.Damage = &v
	}
	if e.Healing != nil {
		v := *e.Healing
		out.Healing = &v
	}
	if e.DebuffDuration != nil {
		v := *e.DebuffDuration
		out.DebuffDuration = &v
	}
	return out
}

func enumName[T comparable](names map[T]string, v T) string {
	if n, ok := names[v]; ok {
		return n
	}
	return "unknown"
}

func parseEnum[T comparable](names map[T]string, s string) (T, bool) {
	for k, n := range names {
		if n == s {
			return k, true
		}
	}
	var zero T
	return zero, false
}
