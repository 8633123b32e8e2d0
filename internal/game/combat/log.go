package combat

// LogType classifies one combat log entry.
type LogType int

const (
	LogOther LogType = iota
	LogAttack
	LogMiss
	LogCounter
	LogCombo
	LogSkill
	LogPetAbility
	LogAbilityFailed
	LogStatusEffect
)

var logTypeNames = map[LogType]string{
	LogOther:         "other",
	LogAttack:        "attack",
	LogMiss:          "miss",
	LogCounter:       "counter",
	LogCombo:         "combo",
	LogSkill:         "skill",
	LogPetAbility:    "pet_ability",
	LogAbilityFailed: "ability_failed",
	LogStatusEffect:  "status_effect",
}

func (t LogType) String() string { return enumName(logTypeNames, t) }

// MarshalText implements encoding.TextMarshaler.
func (t LogType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler; unknown names decode to LogOther.
func (t *LogType) UnmarshalText(b []byte) error {
	*t, _ = parseEnum(logTypeNames, string(b))
	return nil
}

// Flags carries the descriptive markers of a log entry.
type Flags struct {
	Crit              bool `json:"crit,omitempty"`
	Lifesteal         bool `json:"lifesteal,omitempty"`
	LifestealEligible bool `json:"lifestealEligible,omitempty"`
	Dodge             bool `json:"dodge,omitempty"`
	Counter           bool `json:"counter,omitempty"`
	ComboIndex        int  `json:"comboIndex,omitempty"`
}

// LogEntry records a single sub-event of a battle.
//
// Invariant: ActionOrder is strictly increasing across a battle's log;
// Damage and Healing, when set, are integers >= 1; 0 <= HPAfter <= target MaxHP.
type LogEntry struct {
	Turn           int       `json:"turn"`
	ActionOrder    int       `json:"actionOrder"`
	ActorID        string    `json:"actorId"`
	ActorName      string    `json:"actorName"`
	ActorIsPlayer  bool      `json:"actorIsPlayer"`
	TargetID       string    `json:"targetId,omitempty"`
	TargetName     string    `json:"targetName,omitempty"`
	TargetIsPlayer bool      `json:"targetIsPlayer"`
	Type           LogType   `json:"type"`
	Damage         *int      `json:"damage,omitempty"`
	Healing        *int      `json:"healing,omitempty"`
	HPBefore       int       `json:"hpBefore"`
	HPAfter        int       `json:"hpAfter"`
	Flags          Flags     `json:"flags"`
	Description    string    `json:"description"`
	Draws          []float64 `json:"draws,omitempty"`
}

// Random is the draw source the resolvers consume. Take returns the draws made
// since the previous Take; *rng.Recorder satisfies it.
type Random interface {
	Next() float64
	Take() []float64
}

// ResolveContext is the per-call state shared by every resolver.
type ResolveContext struct {
	Rand Random
	Turn int
	// ActionOrderStart is the ordinal assigned to the first entry emitted.
	ActionOrderStart int
	Settings         Settings
}

// entryWriter stamps turn, action order, and recorded draws onto each entry.
type entryWriter struct {
	ctx   ResolveContext
	order int
	logs  []LogEntry
}

func newEntryWriter(ctx ResolveContext) *entryWriter {
	return &entryWriter{ctx: ctx, order: ctx.ActionOrderStart}
}

// emit appends e. Entries are never modified after emit returns.
func (w *entryWriter) emit(e LogEntry) {
	e.Turn = w.ctx.Turn
	e.ActionOrder = w.order
	e.Draws = w.ctx.Rand.Take()
	w.order++
	w.logs = append(w.logs, e)
}

// discardDraws drops draws that did not lead to an entry, such as a failed
// combo, counter or status roll.
func (w *entryWriter) discardDraws() { _ = w.ctx.Rand.Take() }

// between fills the actor/target identity fields of a new entry.
func between(actorID, actorName string, actorIsPlayer bool, target *Actor) LogEntry {
	e := LogEntry{ActorID: actorID, ActorName: actorName, ActorIsPlayer: actorIsPlayer}
	if target != nil {
		e.TargetID = target.ID
		e.TargetName = target.Name
		e.TargetIsPlayer = target.IsPlayer
		e.HPBefore = target.CurrentHP
		e.HPAfter = target.CurrentHP
	}
	return e
}

func actorEntry(actor, target *Actor) LogEntry {
	return between(actor.ID, actor.Name, actor.IsPlayer, target)
}

func intPtr(v int) *int { return &v }
