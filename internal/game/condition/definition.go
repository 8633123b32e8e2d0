// Package condition implements the usage conditions that gate active skills.
package condition

import "fmt"

// Kind identifies which battle fact a Condition tests.
// The zero value (KindUnknown) never holds.
type Kind int

const (
	KindUnknown       Kind = iota // zero value; always false
	KindAlways                    // always true
	KindPlayerHPBelow             // acting player's HP% <= Value
	KindEnemyHPBelow              // lowest living enemy HP% <= Value
	KindEnemyCount                // living enemies <= Value
	KindTurnCount                 // turn >= Value
	KindManaAbove                 // acting player's mana% >= Value
)

var kindNames = map[Kind]string{
	KindAlways:        "always",
	KindPlayerHPBelow: "player_hp_below",
	KindEnemyHPBelow:  "enemy_hp_below",
	KindEnemyCount:    "enemy_count",
	KindTurnCount:     "turn_count",
	KindManaAbove:     "mana_above",
}

// ParseKind maps a condition type name to its Kind.
//
// Postcondition: unrecognised names return KindUnknown and false.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// String returns the wire name of the kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// KindUnknown rather than failing so that a bad definition fails closed at
// evaluation time.
func (k *Kind) UnmarshalText(text []byte) error {
	*k, _ = ParseKind(string(text))
	return nil
}

// Condition is one usage requirement of a skill.
type Condition struct {
	Type  Kind    `yaml:"type" json:"type"`
	Value float64 `yaml:"value" json:"value"`
}

// String returns a compact "type(value)" label.
func (c Condition) String() string {
	return fmt.Sprintf("%s(%g)", c.Type, c.Value)
}
