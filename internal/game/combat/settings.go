package combat

import (
	"fmt"
	"strings"
)

// Settings holds the tunable constants of the battle rules.
type Settings struct {
	// MaxCombo is the maximum number of chained combo hits per attack action.
	MaxCombo int `mapstructure:"max_combo" yaml:"max_combo"`
	// HitBase is the hit chance before accuracy and dodge are applied.
	HitBase float64 `mapstructure:"hit_base" yaml:"hit_base"`
	// HitMin and HitMax clamp the final hit chance.
	HitMin float64 `mapstructure:"hit_min" yaml:"hit_min"`
	HitMax float64 `mapstructure:"hit_max" yaml:"hit_max"`
	// ArmorPenCap is the maximum armor penetration percent honoured.
	ArmorPenCap float64 `mapstructure:"armor_pen_cap" yaml:"armor_pen_cap"`
	// Variance is the ± fraction applied to rolled damage and healing.
	Variance float64 `mapstructure:"variance" yaml:"variance"`
	// CounterRatio is the fraction of the defender's attack dealt by a counter.
	CounterRatio float64 `mapstructure:"counter_ratio" yaml:"counter_ratio"`
	// ManaRegenRate is the fraction of max mana regenerated each upkeep.
	ManaRegenRate float64 `mapstructure:"mana_regen_rate" yaml:"mana_regen_rate"`
	// TurnCeiling bounds battles run with unlimited MaxTurns.
	TurnCeiling int `mapstructure:"turn_ceiling" yaml:"turn_ceiling"`
}

// DefaultSettings returns the standard rule constants.
func DefaultSettings() Settings {
	return Settings{
		MaxCombo:      3,
		HitBase:       50,
		HitMin:        5,
		HitMax:        95,
		ArmorPenCap:   90,
		Variance:      0.10,
		CounterRatio:  0.3,
		ManaRegenRate: 0.10,
		TurnCeiling:   1000,
	}
}

// Validate checks all settings invariants.
//
// Postcondition: Returns nil if valid, or an error describing all violations.
func (s Settings) Validate() error {
	var errs []string
	if s.MaxCombo < 0 {
		errs = append(errs, fmt.Sprintf("max_combo must be >= 0, got %d", s.MaxCombo))
	}
	if s.HitMin < 0 || s.HitMax > 100 || s.HitMin > s.HitMax {
		errs = append(errs, fmt.Sprintf("hit_min/hit_max must satisfy 0 <= min <= max <= 100, got %g/%g", s.HitMin, s.HitMax))
	}
	if s.ArmorPenCap < 0 || s.ArmorPenCap > 100 {
		errs = append(errs, fmt.Sprintf("armor_pen_cap must be 0-100, got %g", s.ArmorPenCap))
	}
	if s.Variance < 0 || s.Variance >= 1 {
		errs = append(errs, fmt.Sprintf("variance must be in [0, 1), got %g", s.Variance))
	}
	if s.CounterRatio < 0 {
		errs = append(errs, fmt.Sprintf("counter_ratio must be >= 0, got %g", s.CounterRatio))
	}
	if s.ManaRegenRate < 0 || s.ManaRegenRate > 1 {
		errs = append(errs, fmt.Sprintf("mana_regen_rate must be 0-1, got %g", s.ManaRegenRate))
	}
	if s.TurnCeiling < 1 {
		errs = append(errs, fmt.Sprintf("turn_ceiling must be >= 1, got %d", s.TurnCeiling))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
