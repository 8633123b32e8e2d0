package character

import (
	"math"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// Effective applies the diminishing-returns curve max(0, attr)^exponent.
//
// Postcondition: Returns >= 0.
func Effective(attr int, exponent float64) float64 {
	if attr <= 0 {
		return 0
	}
	return math.Pow(float64(attr), exponent)
}

// Softcap is the saturating transform cap·raw/(raw+k).
//
// Precondition: cap > 0, k > 0.
// Postcondition: 0 <= return value < cap; raw <= 0 returns 0.
func Softcap(raw, cap, k float64) float64 {
	if raw <= 0 {
		return 0
	}
	return cap * raw / (raw + k)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func floorInt(v float64) int { return combat.FloorInt(v) }

// Derive converts core attributes into combat statistics using the balance table k.
//
// Postcondition: integer stats are floored; percent stats are rounded to two
// decimals; CritRate <= k.CritHardCap, DodgeRate <= k.DodgeHardCap,
// Accuracy <= k.AccuracyHardCap.
func Derive(core Core, k Constants) combat.CombatStats {
	total := core.Total()
	str := Effective(total.Strength, k.Exponent)
	intl := Effective(total.Intelligence, k.Exponent)
	dex := Effective(total.Dexterity, k.Exponent)
	vit := Effective(total.Vitality, k.Exponent)
	luk := Effective(total.Luck, k.Exponent)
	b := core.Bonus

	critRaw := k.BaseCritRate + k.CritPerLUK*luk + k.CritPerDEX*dex
	dodgeRaw := k.BaseDodge + k.DodgePerDEX*dex + k.DodgePerLUK*luk
	accRaw := k.BaseAccuracy + k.AccuracyPerDEX*dex + k.AccuracyPerLUK*luk

	return combat.CombatStats{
		MaxHP:       floorInt(k.BaseHP+k.HPPerVIT*vit+k.HPPerSTR*str) + b.MaxHP,
		MaxMana:     floorInt(k.BaseMana+k.ManaPerINT*intl+k.ManaPerVIT*vit) + b.MaxMana,
		Attack:      floorInt(k.BaseAttack+k.AttackPerSTR*str+k.AttackPerDEX*dex+k.AttackPerINT*intl) + b.Attack,
		Defense:     floorInt(k.BaseDefense+k.DefensePerVIT*vit+k.DefensePerSTR*str) + b.Defense,
		CritRate:    round2(math.Min(k.CritHardCap, Softcap(critRaw, k.CritSoftcap, k.CritSoftcapK))),
		CritDamage:  round2(k.BaseCritDamage + k.CritDamagePerLUK*luk + k.CritDamagePerSTR*str + b.CritDamage),
		DodgeRate:   round2(math.Min(k.DodgeHardCap, Softcap(dodgeRaw, k.DodgeSoftcap, k.DodgeSoftcapK))),
		Accuracy:    round2(math.Min(k.AccuracyHardCap, Softcap(accRaw, k.AccuracySoftcap, k.AccuracySoftcapK))),
		ComboRate:   round2(math.Max(0, k.ComboPerDEX*dex+b.ComboRate)),
		CounterRate: round2(math.Max(0, k.CounterPerVIT*vit+b.CounterRate)),
		Lifesteal:   round2(math.Max(0, b.Lifesteal)),
		ArmorPen:    round2(math.Max(0, b.ArmorPen)),
		Speed:       round2(k.SpeedBase + k.SpeedPerDEX*dex),
	}
}

// DeriveDefault is Derive with DefaultConstants.
func DeriveDefault(core Core) combat.CombatStats {
	return Derive(core, DefaultConstants())
}
