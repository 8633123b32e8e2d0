// Package character defines a character's core attributes and the pure
// conversion from attributes to derived combat statistics.
package character

// Attributes holds the five core attribute values.
type Attributes struct {
	Strength     int `yaml:"str" json:"str"`
	Intelligence int `yaml:"int" json:"int"`
	Dexterity    int `yaml:"dex" json:"dex"`
	Vitality     int `yaml:"vit" json:"vit"`
	Luck         int `yaml:"luk" json:"luk"`
}

// Add returns the element-wise sum of a and o.
func (a Attributes) Add(o Attributes) Attributes {
	return Attributes{
		Strength:     a.Strength + o.Strength,
		Intelligence: a.Intelligence + o.Intelligence,
		Dexterity:    a.Dexterity + o.Dexterity,
		Vitality:     a.Vitality + o.Vitality,
		Luck:         a.Luck + o.Luck,
	}
}

// Bonus holds flat additions from equipment and other sources, applied after scaling.
type Bonus struct {
	Attack      int     `yaml:"attack" json:"attack,omitempty"`
	Defense     int     `yaml:"defense" json:"defense,omitempty"`
	MaxHP       int     `yaml:"max_hp" json:"maxHp,omitempty"`
	MaxMana     int     `yaml:"max_mana" json:"maxMana,omitempty"`
	CritDamage  float64 `yaml:"crit_damage" json:"critDamage,omitempty"`
	Lifesteal   float64 `yaml:"lifesteal" json:"lifesteal,omitempty"`
	ArmorPen    float64 `yaml:"armor_pen" json:"armorPen,omitempty"`
	ComboRate   float64 `yaml:"combo_rate" json:"comboRate,omitempty"`
	CounterRate float64 `yaml:"counter_rate" json:"counterRate,omitempty"`
}

// Core is the full input of Derive: base attributes, allocated points, and flat bonuses.
type Core struct {
	Attributes Attributes `yaml:"attributes" json:"attributes"`
	Points     Attributes `yaml:"points" json:"points"`
	Bonus      Bonus      `yaml:"bonus" json:"bonus"`
}

// Total returns Attributes + Points.
func (c Core) Total() Attributes { return c.Attributes.Add(c.Points) }
