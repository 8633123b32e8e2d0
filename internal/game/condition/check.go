package condition

// Vital is the HP snapshot of one enemy as seen by condition evaluation.
type Vital struct {
	HP    int
	MaxHP int
}

// Alive reports whether HP > 0.
func (v Vital) Alive() bool { return v.HP > 0 }

// State is the battle snapshot a skill's conditions are evaluated against.
type State struct {
	PlayerHP      int
	PlayerMaxHP   int
	PlayerMana    int
	PlayerMaxMana int
	Enemies       []Vital
	Turn          int
}

// percent returns 100*cur/max, or 0 when max <= 0.
func percent(cur, max int) float64 {
	if max <= 0 {
		return 0
	}
	return 100 * float64(cur) / float64(max)
}

// lowestEnemyPercent folds the living enemies down to the lowest HP percentage.
//
// Postcondition: ok is false iff no enemy in s.Enemies is alive.
func lowestEnemyPercent(enemies []Vital) (pct float64, ok bool) {
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		p := percent(e.HP, e.MaxHP)
		if !ok || p < pct {
			pct, ok = p, true
		}
	}
	return pct, ok
}

// Holds evaluates a single condition against s.
//
// Postcondition: KindUnknown and unrecognised kinds return false;
// KindEnemyHPBelow returns false when there is no living enemy.
func Holds(c Condition, s State) bool {
	switch c.Type {
	case KindAlways:
		return true
	case KindPlayerHPBelow:
		return percent(s.PlayerHP, s.PlayerMaxHP) <= c.Value
	case KindEnemyHPBelow:
		pct, ok := lowestEnemyPercent(s.Enemies)
		return ok && pct <= c.Value
	case KindEnemyCount:
		alive := 0
		for _, e := range s.Enemies {
			if e.Alive() {
				alive++
			}
		}
		return float64(alive) <= c.Value
	case KindTurnCount:
		return float64(s.Turn) >= c.Value
	case KindManaAbove:
		return percent(s.PlayerMana, s.PlayerMaxMana) >= c.Value
	default:
		return false
	}
}

// AllHold reports whether every condition holds. An empty list holds.
func AllHold(conds []Condition, s State) bool {
	for _, c := range conds {
		if !Holds(c, s) {
			return false
		}
	}
	return true
}
