package character

import (
	"errors"
	"fmt"
)

// attributeNames are the accepted keys for point allocation.
var attributeNames = []string{"str", "int", "dex", "vit", "luk"}

// AllocatePoints adds allocation deltas, keyed by short attribute name, to the
// allocated points of core.
//
// Precondition: every key is one of str, int, dex, vit, luk.
// Postcondition: Returns the updated Core, or an error naming the first unknown
// key; core is never modified in place.
func AllocatePoints(core Core, alloc map[string]int) (Core, error) {
	for name := range alloc {
		if !knownAttribute(name) {
			return Core{}, fmt.Errorf("unknown attribute %q", name)
		}
	}
	for name, delta := range alloc {
		switch name {
		case "str":
			core.Points.Strength += delta
		case "int":
			core.Points.Intelligence += delta
		case "dex":
			core.Points.Dexterity += delta
		case "vit":
			core.Points.Vitality += delta
		case "luk":
			core.Points.Luck += delta
		}
	}
	return core, nil
}

func knownAttribute(name string) bool {
	for _, n := range attributeNames {
		if n == name {
			return true
		}
	}
	return false
}

// ValidateCore rejects negative allocated points.
//
// Postcondition: Returns nil iff every allocated point total is >= 0.
func ValidateCore(core Core) error {
	p := core.Points
	if p.Strength < 0 || p.Intelligence < 0 || p.Dexterity < 0 || p.Vitality < 0 || p.Luck < 0 {
		return errors.New("allocated points must not be negative")
	}
	return nil
}
