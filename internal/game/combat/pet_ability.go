package combat

import (
	"fmt"
	"math"
	"strings"
)

// PetTargets are the two sides as seen from the pet's owner.
type PetTargets struct {
	Allies  []*Actor
	Enemies []*Actor
}

// selectPetTargets resolves ab.TargetType against the living actors.
// TargetEnemy draws once when at least one enemy is alive.
func selectPetTargets(ab PetAbility, owner *Actor, sides PetTargets, r Random) []*Actor {
	switch ab.TargetType {
	case TargetEnemy:
		if t := pickRandom(livingActors(sides.Enemies), r); t != nil {
			return []*Actor{t}
		}
	case TargetAllEnemies:
		return livingActors(sides.Enemies)
	case TargetAlly:
		if t := lowestHPPercent(sides.Allies); t != nil {
			return []*Actor{t}
		}
	case TargetAllAllies:
		return livingActors(sides.Allies)
	case TargetSelf:
		if owner.Alive() {
			return []*Actor{owner}
		}
	}
	return nil
}

// ResolvePetAbility resolves ab for pet on behalf of owner. Mana and cooldown
// bookkeeping is the engine's job; this function only applies the effect.
//
// Precondition: pet, owner and ctx.Rand are non-nil.
// Postcondition: emits a single LogAbilityFailed entry when no valid target exists.
func ResolvePetAbility(pet *Pet, ab PetAbility, owner *Actor, sides PetTargets, ctx ResolveContext) CastOutcome {
	w := newEntryWriter(ctx)
	defer w.discardDraws()

	targets := selectPetTargets(ab, owner, sides, ctx.Rand)
	if len(targets) == 0 {
		e := between(pet.ID, pet.Name, owner.IsPlayer, nil)
		e.Type = LogAbilityFailed
		e.Description = fmt.Sprintf("%s tries %s but finds no target.", pet.Name, ab.Name)
		w.emit(e)
		return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
	}

	for _, t := range targets {
		switch ab.Type {
		case AbilityAttack:
			petAttack(w, pet, ab, owner, t)
		case AbilityHeal:
			petHeal(w, pet, ab, owner, t)
		case AbilityBuff:
			e := between(pet.ID, pet.Name, owner.IsPlayer, t)
			ab.Effect.Buff.applyTo(&t.Stats)
			e.Type = LogPetAbility
			e.Description = fmt.Sprintf("%s uses %s on %s (%s).", pet.Name, ab.Name, t.Name, describeDelta(ab.Effect.Buff))
			w.emit(e)
		default:
			e := between(pet.ID, pet.Name, owner.IsPlayer, t)
			e.Type = LogPetAbility
			e.Description = fmt.Sprintf("%s uses %s on %s (%s effect, not tracked).", pet.Name, ab.Name, t.Name, ab.Type)
			w.emit(e)
		}
	}
	return CastOutcome{Logs: w.logs, ActionOrderEnd: w.order}
}

// petAttack deals owner.attack·multiplier + Σ petStat·scaling to t, mitigated by
// 1 − def/(def+100) unless the damage is true damage.
func petAttack(w *entryWriter, pet *Pet, ab PetAbility, owner, t *Actor) {
	eff := ab.Effect
	mult := 1.0
	if eff.Multiplier != nil {
		mult = *eff.Multiplier
	}
	raw := float64(owner.Stats.Attack)*mult + pet.Stats.Dot(eff.Scaling)
	if eff.DamageType != DamageTrue {
		def := math.Max(0, float64(t.Stats.Defense))
		raw *= 1 - def/(def+100)
	}
	dmg := vary(raw, w.ctx)

	e := between(pet.ID, pet.Name, owner.IsPlayer, t)
	t.ApplyDamage(dmg)
	e.HPAfter = t.CurrentHP
	e.Type = LogPetAbility
	e.Damage = intPtr(dmg)
	e.Description = fmt.Sprintf("%s uses %s on %s for %d %s damage.", pet.Name, ab.Name, t.Name, dmg, eff.DamageType)
	w.emit(e)

	for _, se := range eff.StatusEffects {
		if !se.applies(w.ctx.Rand) {
			w.discardDraws()
			continue
		}
		s := between(pet.ID, pet.Name, owner.IsPlayer, t)
		s.Type = LogStatusEffect
		s.Description = fmt.Sprintf("%s is afflicted with %s for %d turns.", t.Name, se.Name, se.Duration)
		w.emit(s)
	}
}

// petHeal restores HealFlat + HealPercent% of t's max HP, capped at max HP.
func petHeal(w *entryWriter, pet *Pet, ab PetAbility, owner, t *Actor) {
	amount := FloorInt(ab.Effect.HealFlat + ab.Effect.HealPercent*float64(t.Stats.MaxHP)/100)
	e := between(pet.ID, pet.Name, owner.IsPlayer, t)
	healed := t.Heal(amount)
	e.HPAfter = t.CurrentHP
	e.Type = LogPetAbility
	if healed > 0 {
		e.Healing = intPtr(healed)
		e.Description = fmt.Sprintf("%s uses %s on %s, restoring %d HP.", pet.Name, ab.Name, t.Name, healed)
	} else {
		e.Description = fmt.Sprintf("%s uses %s on %s, but nothing is restored.", pet.Name, ab.Name, t.Name)
	}
	w.emit(e)
}

func describeDelta(d StatDelta) string {
	if d.IsZero() {
		return "no change"
	}
	var parts []string
	addInt := func(name string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", name, v))
		}
	}
	addPct := func(name string, v float64) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+g", name, v))
		}
	}
	addInt("attack", d.Attack)
	addInt("defense", d.Defense)
	addPct("critRate", d.CritRate)
	addPct("critDamage", d.CritDamage)
	addPct("dodgeRate", d.DodgeRate)
	addPct("accuracy", d.Accuracy)
	addPct("lifesteal", d.Lifesteal)
	addPct("armorPen", d.ArmorPen)
	addPct("comboRate", d.ComboRate)
	addPct("counterRate", d.CounterRate)
	addPct("speed", d.Speed)
	return strings.Join(parts, ", ")
}
