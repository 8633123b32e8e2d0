package combat

import "fmt"

// AttackOutcome holds the result of one basic-attack action.
type AttackOutcome struct {
	Logs []LogEntry
	// DamageTotal is the damage dealt to the defender across the initial hit
	// and every combo hit. Counter damage is not included.
	DamageTotal int
	// ActionOrderEnd is the next unused action order.
	ActionOrderEnd int
}

// roll draws once and reports whether the draw falls under chance percent.
func roll(r Random, chance float64) bool {
	return r.Next()*100 < chance
}

// ResolveAttack performs a basic attack of attacker against defender: the
// initial hit, then up to Settings.MaxCombo combo hits while the combo roll
// keeps succeeding and both sides are alive.
//
// Per hit, draws are made in this order: hit, crit (on hit), variance (on hit),
// counter (on hit, both alive). One combo draw follows each hit. An entry
// carries only the draws made for it; a combo entry starts with the combo
// roll that triggered it.
//
// Precondition: attacker and defender are non-nil and alive; ctx.Rand is non-nil.
// Postcondition: every emitted entry consumes exactly one action order;
// defender.CurrentHP >= 0; attacker.CurrentHP <= attacker.Stats.MaxHP.
func ResolveAttack(attacker, defender *Actor, ctx ResolveContext) AttackOutcome {
	w := newEntryWriter(ctx)
	total := resolveHit(w, attacker, defender, 0)
	for combo := 1; combo <= ctx.Settings.MaxCombo; combo++ {
		if !attacker.Alive() || !defender.Alive() {
			break
		}
		if !roll(ctx.Rand, attacker.Stats.ComboRate) {
			break
		}
		total += resolveHit(w, attacker, defender, combo)
	}
	w.discardDraws()
	return AttackOutcome{Logs: w.logs, DamageTotal: total, ActionOrderEnd: w.order}
}

// resolveHit resolves one swing and returns the damage dealt to defender.
func resolveHit(w *entryWriter, attacker, defender *Actor, comboIndex int) int {
	s := w.ctx.Settings
	r := w.ctx.Rand

	hitChance := clampFloat(s.HitBase+attacker.Stats.Accuracy-defender.Stats.DodgeRate, s.HitMin, s.HitMax)
	if !roll(r, hitChance) {
		e := actorEntry(attacker, defender)
		e.Type = LogMiss
		e.Flags = Flags{Dodge: true, ComboIndex: comboIndex}
		e.Description = fmt.Sprintf("%s attacks %s but misses.", attacker.Name, defender.Name)
		w.emit(e)
		return 0
	}

	crit := roll(r, attacker.Stats.CritRate)
	pen := clampFloat(attacker.Stats.ArmorPen, 0, s.ArmorPenCap)
	effDefense := FloorInt(float64(defender.Stats.Defense) * (1 - pen/100))
	raw := max(1, attacker.Stats.Attack-effDefense)
	spread := FloorInt(float64(raw) * s.Variance)
	delta := FloorInt(r.Next()*float64(2*spread+1)) - spread
	mult := 1.0
	if crit {
		mult = attacker.Stats.CritDamage / 100
	}
	dmg := max(1, FloorInt(float64(raw+delta)*mult))

	e := actorEntry(attacker, defender)
	defender.ApplyDamage(dmg)
	e.HPAfter = defender.CurrentHP
	e.Damage = intPtr(dmg)

	steal := FloorInt(float64(dmg) * attacker.Stats.Lifesteal / 100)
	ls := actorEntry(attacker, attacker)
	healed := attacker.Heal(steal)
	ls.HPAfter = attacker.CurrentHP

	e.Type = LogAttack
	if comboIndex > 0 {
		e.Type = LogCombo
	}
	e.Flags = Flags{
		Crit:              crit,
		Lifesteal:         healed > 0,
		LifestealEligible: attacker.Stats.Lifesteal > 0,
		ComboIndex:        comboIndex,
	}
	e.Description = hitDescription(attacker, defender, dmg, crit, comboIndex)
	w.emit(e)

	if healed > 0 {
		ls.Type = LogOther
		ls.Healing = intPtr(healed)
		ls.Flags = Flags{Lifesteal: true}
		ls.Description = fmt.Sprintf("%s drains %d HP.", attacker.Name, healed)
		w.emit(ls)
	}

	if defender.Alive() && attacker.Alive() && roll(r, defender.Stats.CounterRate) {
		counter := FloorInt(float64(defender.Stats.Attack) * s.CounterRatio)
		if counter > 0 {
			c := actorEntry(defender, attacker)
			attacker.ApplyDamage(counter)
			c.HPAfter = attacker.CurrentHP
			c.Type = LogCounter
			c.Damage = intPtr(counter)
			c.Flags = Flags{Counter: true}
			c.Description = fmt.Sprintf("%s counters %s for %d damage.", defender.Name, attacker.Name, counter)
			w.emit(c)
		}
	}
	// A counter roll that produced no entry does not belong to the next swing.
	w.discardDraws()
	return dmg
}

func hitDescription(attacker, defender *Actor, dmg int, crit bool, comboIndex int) string {
	verb := "hits"
	if crit {
		verb = "critically hits"
	}
	if comboIndex > 0 {
		return fmt.Sprintf("%s %s %s again (combo %d) for %d damage.", attacker.Name, verb, defender.Name, comboIndex, dmg)
	}
	return fmt.Sprintf("%s %s %s for %d damage.", attacker.Name, verb, defender.Name, dmg)
}
