package combat

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the structural invariants the engine relies on. The engine
// itself never calls Validate; callers run it before Run.
//
// Postcondition: Returns nil if p is valid, or an error describing all violations.
func (p RunParams) Validate() error {
	var errs []string
	seen := make(map[string]bool)
	check := func(side string, actors []ActorInput, wantPlayer bool) {
		for i, a := range actors {
			where := fmt.Sprintf("%s[%d]", side, i)
			if a.ID == "" {
				errs = append(errs, where+": id must not be empty")
			} else if seen[a.ID] {
				errs = append(errs, fmt.Sprintf("%s: duplicate id %q", where, a.ID))
			}
			seen[a.ID] = true
			if a.IsPlayer != wantPlayer {
				errs = append(errs, fmt.Sprintf("%s: is_player must be %t", where, wantPlayer))
			}
			errs = append(errs, validateStats(where, a.Stats)...)
			for j, s := range a.Skills {
				if s.ID == "" {
					errs = append(errs, fmt.Sprintf("%s.skills[%d]: id must not be empty", where, j))
				}
				if s.ManaCost < 0 || s.Cooldown < 0 {
					errs = append(errs, fmt.Sprintf("%s.skills[%d]: mana_cost and cooldown must be >= 0", where, j))
				}
			}
			if a.Pet != nil {
				for j, ab := range a.Pet.Abilities {
					if ab.ID == "" {
						errs = append(errs, fmt.Sprintf("%s.pet.abilities[%d]: id must not be empty", where, j))
					}
					if ab.ManaCost < 0 || ab.Cooldown < 0 {
						errs = append(errs, fmt.Sprintf("%s.pet.abilities[%d]: mana_cost and cooldown must be >= 0", where, j))
					}
				}
			}
		}
	}
	check("players", p.Players, true)
	check("enemies", p.Enemies, false)
	if len(errs) > 0 {
		return fmt.Errorf("invalid battle: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateStats(where string, s CombatStats) []string {
	var errs []string
	if s.MaxHP < 1 {
		errs = append(errs, fmt.Sprintf("%s: max_hp must be >= 1, got %d", where, s.MaxHP))
	}
	if s.MaxMana < 0 || s.Attack < 0 || s.Defense < 0 {
		errs = append(errs, fmt.Sprintf("%s: attack, defense and max_mana must be >= 0", where))
	}
	pct := map[string]float64{
		"crit_rate": s.CritRate, "crit_damage": s.CritDamage, "lifesteal": s.Lifesteal,
		"armor_pen": s.ArmorPen, "dodge_rate": s.DodgeRate, "accuracy": s.Accuracy,
		"combo_rate": s.ComboRate, "counter_rate": s.CounterRate, "speed": s.Speed,
	}
	for _, name := range []string{"crit_rate", "crit_damage", "lifesteal", "armor_pen", "dodge_rate", "accuracy", "combo_rate", "counter_rate", "speed"} {
		v := pct[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Sprintf("%s: %s must be finite and >= 0, got %g", where, name, v))
		}
	}
	return errs
}
