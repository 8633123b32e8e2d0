package character

import (
	"fmt"
	"math"
	"strings"
)

// Constants is the game-balance table that drives Derive. The defaults are a
// balance contract; deployments may override individual entries via config.
type Constants struct {
	// Exponent is the diminishing-returns power applied to every attribute.
	Exponent float64 `mapstructure:"exponent" yaml:"exponent"`

	BaseHP   float64 `mapstructure:"base_hp" yaml:"base_hp"`
	HPPerVIT float64 `mapstructure:"hp_per_vit" yaml:"hp_per_vit"`
	HPPerSTR float64 `mapstructure:"hp_per_str" yaml:"hp_per_str"`

	BaseMana   float64 `mapstructure:"base_mana" yaml:"base_mana"`
	ManaPerINT float64 `mapstructure:"mana_per_int" yaml:"mana_per_int"`
	ManaPerVIT float64 `mapstructure:"mana_per_vit" yaml:"mana_per_vit"`

	BaseAttack   float64 `mapstructure:"base_attack" yaml:"base_attack"`
	AttackPerSTR float64 `mapstructure:"attack_per_str" yaml:"attack_per_str"`
	AttackPerDEX float64 `mapstructure:"attack_per_dex" yaml:"attack_per_dex"`
	AttackPerINT float64 `mapstructure:"attack_per_int" yaml:"attack_per_int"`

	BaseDefense   float64 `mapstructure:"base_defense" yaml:"base_defense"`
	DefensePerVIT float64 `mapstructure:"defense_per_vit" yaml:"defense_per_vit"`
	DefensePerSTR float64 `mapstructure:"defense_per_str" yaml:"defense_per_str"`

	BaseCritRate float64 `mapstructure:"base_crit_rate" yaml:"base_crit_rate"`
	CritPerLUK   float64 `mapstructure:"crit_per_luk" yaml:"crit_per_luk"`
	CritPerDEX   float64 `mapstructure:"crit_per_dex" yaml:"crit_per_dex"`
	CritSoftcap  float64 `mapstructure:"crit_softcap" yaml:"crit_softcap"`
	CritSoftcapK float64 `mapstructure:"crit_softcap_k" yaml:"crit_softcap_k"`
	CritHardCap  float64 `mapstructure:"crit_hard_cap" yaml:"crit_hard_cap"`

	BaseCritDamage   float64 `mapstructure:"base_crit_damage" yaml:"base_crit_damage"`
	CritDamagePerLUK float64 `mapstructure:"crit_damage_per_luk" yaml:"crit_damage_per_luk"`
	CritDamagePerSTR float64 `mapstructure:"crit_damage_per_str" yaml:"crit_damage_per_str"`

	BaseDodge     float64 `mapstructure:"base_dodge" yaml:"base_dodge"`
	DodgePerDEX   float64 `mapstructure:"dodge_per_dex" yaml:"dodge_per_dex"`
	DodgePerLUK   float64 `mapstructure:"dodge_per_luk" yaml:"dodge_per_luk"`
	DodgeSoftcap  float64 `mapstructure:"dodge_softcap" yaml:"dodge_softcap"`
	DodgeSoftcapK float64 `mapstructure:"dodge_softcap_k" yaml:"dodge_softcap_k"`
	DodgeHardCap  float64 `mapstructure:"dodge_hard_cap" yaml:"dodge_hard_cap"`

	BaseAccuracy     float64 `mapstructure:"base_accuracy" yaml:"base_accuracy"`
	AccuracyPerDEX   float64 `mapstructure:"accuracy_per_dex" yaml:"accuracy_per_dex"`
	AccuracyPerLUK   float64 `mapstructure:"accuracy_per_luk" yaml:"accuracy_per_luk"`
	AccuracySoftcap  float64 `mapstructure:"accuracy_softcap" yaml:"accuracy_softcap"`
	AccuracySoftcapK float64 `mapstructure:"accuracy_softcap_k" yaml:"accuracy_softcap_k"`
	AccuracyHardCap  float64 `mapstructure:"accuracy_hard_cap" yaml:"accuracy_hard_cap"`

	ComboPerDEX   float64 `mapstructure:"combo_per_dex" yaml:"combo_per_dex"`
	CounterPerVIT float64 `mapstructure:"counter_per_vit" yaml:"counter_per_vit"`
	SpeedBase     float64 `mapstructure:"speed_base" yaml:"speed_base"`
	SpeedPerDEX   float64 `mapstructure:"speed_per_dex" yaml:"speed_per_dex"`
}

// DefaultConstants returns the standard balance table.
func DefaultConstants() Constants {
	return Constants{
		Exponent: 0.94,

		BaseHP: 100, HPPerVIT: 12, HPPerSTR: 2,
		BaseMana: 50, ManaPerINT: 6, ManaPerVIT: 1,
		BaseAttack: 10, AttackPerSTR: 2.0, AttackPerDEX: 0.5, AttackPerINT: 0.3,
		BaseDefense: 5, DefensePerVIT: 1.5, DefensePerSTR: 0.3,

		BaseCritRate: 5, CritPerLUK: 0.35, CritPerDEX: 0.1,
		CritSoftcap: 75, CritSoftcapK: 60, CritHardCap: 60,
		BaseCritDamage: 150, CritDamagePerLUK: 0.5, CritDamagePerSTR: 0.1,

		BaseDodge: 2, DodgePerDEX: 0.25, DodgePerLUK: 0.05,
		DodgeSoftcap: 50, DodgeSoftcapK: 80, DodgeHardCap: 50,

		BaseAccuracy: 0, AccuracyPerDEX: 0.6, AccuracyPerLUK: 0.1,
		AccuracySoftcap: 150, AccuracySoftcapK: 150, AccuracyHardCap: 150,

		ComboPerDEX: 0.05, CounterPerVIT: 0.04,
		SpeedBase: 10, SpeedPerDEX: 0.5,
	}
}

// Validate checks the table's invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (k Constants) Validate() error {
	var errs []string
	if k.Exponent <= 0 || k.Exponent > 1 || math.IsNaN(k.Exponent) {
		errs = append(errs, fmt.Sprintf("exponent must be in (0, 1], got %g", k.Exponent))
	}
	caps := []struct {
		name      string
		cap, k, h float64
	}{
		{"crit", k.CritSoftcap, k.CritSoftcapK, k.CritHardCap},
		{"dodge", k.DodgeSoftcap, k.DodgeSoftcapK, k.DodgeHardCap},
		{"accuracy", k.AccuracySoftcap, k.AccuracySoftcapK, k.AccuracyHardCap},
	}
	for _, c := range caps {
		if c.cap <= 0 || c.k <= 0 || c.h <= 0 {
			errs = append(errs, fmt.Sprintf("%s softcap, softcap_k and hard_cap must be > 0", c.name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
