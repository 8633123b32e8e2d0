package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/formula"
)

// CastOutcome holds the result of one skill or pet ability.
type CastOutcome struct {
	Logs []LogEntry
	// ActionOrderEnd is the next unused action order.
	ActionOrderEnd int
}

// skillVars returns the only variables a skill formula may reference.
// INT is a proxy for the caster's attack.
func skillVars(caster *Actor, s Skill) formula.Vars {
	return formula.Vars{
		"INT":    float64(caster.Stats.Attack),
		"attack": float64(caster.Stats.Attack),
		"level":  float64(s.Level),
	}
}

// vary applies the ± Settings.Variance spread with one draw, floors, and
// enforces a minimum of 1.
func vary(v float64, ctx ResolveContext) int {
	f := 1 - ctx.Settings.Variance + ctx.Rand.Next()*2*ctx.Settings.Variance
	return max(1, FloorInt(v*f))
}

// skillBase evaluates formulaSrc when present, otherwise returns base.
func skillBase(formulaSrc string, base float64, caster *Actor, s Skill) (float64, error) {
	if formulaSrc == "" {
		return base, nil
	}
	v, err := formula.Evaluate(formulaSrc, skillVars(caster, s))
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", formulaSrc, err)
	}
	return v, nil
}

// calculateSkillDamage computes the damage one cast deals to target.
// Magical damage ignores defense, physical subtracts half of it, true damage
// is unmitigated.
//
// Postcondition: on success the result is >= 1 and one draw was made.
func calculateSkillDamage(caster, target *Actor, s Skill, base float64, ctx ResolveContext) (int, error) {
	raw, err := skillBase(s.DamageFormula, base, caster, s)
	if err != nil {
		return 0, err
	}
	if s.DamageType == DamagePhysical {
		raw -= float64(target.Stats.Defense) / 2
	}
	return vary(raw, ctx), nil
}

// calculateSkillHealing computes the raw healing of one cast.
func calculateSkillHealing(caster *Actor, s Skill, base float64, ctx ResolveContext) (int, error) {
	raw, err := skillBase(s.HealingFormula, base, caster, s)
	if err != nil {
		return 0, err
	}
	return vary(raw, ctx), nil
}

// ResolveSkill casts s from caster onto targets.
//
// A cast never fails loudly: missing mana, missing targets, a missing effect
// entry or a broken formula each produce a descriptive LogOther entry and the
// cast becomes a no-op. Mana is deducted once the caster can pay and has a
// target, before the effect is looked up.
//
// Precondition: caster is non-nil and alive; ctx.Rand is non-nil.
// Postcondition: no target's HP leaves [0, MaxHP]; caster.CurrentMana >= 0.
func ResolveSkill(caster *Actor, s Skill, targets []*Actor, ctx ResolveContext) CastOutcome {
	w := newEntryWriter(ctx)
	defer w.discardDraws()

	if caster.CurrentMana < s.ManaCost {
		e := actorEntry(caster, caster)
		e.Type = LogOther
		e.Description = fmt.Sprintf("%s tries to cast %s but lacks mana (%d/%d).", caster.Name, s.Name, caster.CurrentMana, s.ManaCost)
		w.emit(e)
		return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
	}
	if len(targets) == 0 {
		e := actorEntry(caster, caster)
		e.Type = LogOther
		e.Description = fmt.Sprintf("%s tries to cast %s but has no target.", caster.Name, s.Name)
		w.emit(e)
		return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
	}
	caster.CurrentMana -= s.ManaCost

	eff, ok := s.EffectFor()
	if !ok {
		e := actorEntry(caster, caster)
		e.Type = LogOther
		e.Description = fmt.Sprintf("%s casts %s, but it has no effect at level %d.", caster.Name, s.Name, s.Level)
		w.emit(e)
		return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
	}

	switch {
	case eff.Damage != nil:
		for _, t := range targets {
			dmg, err := calculateSkillDamage(caster, t, s, *eff.Damage, ctx)
			if err != nil {
				w.emit(formulaError(caster, t, s, err))
				break
			}
			e := actorEntry(caster, t)
			t.ApplyDamage(dmg)
			e.HPAfter = t.CurrentHP
			e.Type = LogSkill
			e.Damage = intPtr(dmg)
			e.Description = fmt.Sprintf("%s casts %s on %s for %d %s damage.", caster.Name, s.Name, t.Name, dmg, s.DamageType)
			w.emit(e)
		}
	case eff.Healing != nil:
		for _, t := range targets {
			amount, err := calculateSkillHealing(caster, s, *eff.Healing, ctx)
			if err != nil {
				w.emit(formulaError(caster, t, s, err))
				break
			}
			e := actorEntry(caster, t)
			healed := t.Heal(amount)
			e.HPAfter = t.CurrentHP
			e.Type = LogSkill
			if healed > 0 {
				e.Healing = intPtr(healed)
				e.Description = fmt.Sprintf("%s casts %s on %s, restoring %d HP.", caster.Name, s.Name, t.Name, healed)
			} else {
				e.Description = fmt.Sprintf("%s casts %s on %s, who is already at full health.", caster.Name, s.Name, t.Name)
			}
			w.emit(e)
		}
	case eff.DebuffDuration != nil:
		for _, t := range targets {
			e := actorEntry(caster, t)
			e.Type = LogSkill
			e.Description = fmt.Sprintf("%s casts %s on %s (debuff for %d turns, not tracked).", caster.Name, s.Name, t.Name, *eff.DebuffDuration)
			w.emit(e)
		}
	default:
		e := actorEntry(caster, caster)
		e.Type = LogOther
		e.Description = fmt.Sprintf("%s casts %s, but nothing happens.", caster.Name, s.Name)
		w.emit(e)
	}
	return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
}

func formulaError(caster, target *Actor, s Skill, err error) LogEntry {
	e := actorEntry(caster, target)
	e.Type = LogOther
	e.Description = fmt.Sprintf("%s fails to cast %s: %v", caster.Name, s.Name, err)
	return e
}
