package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/condition"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
)

// Outcome is the result of a battle from the players' point of view.
type Outcome int

const (
	Defeat Outcome = iota
	Victory
)

var outcomeNames = map[Outcome]string{
	Defeat:  "defeat",
	Victory: "victory",
}

// String returns "victory" or "defeat".
func (o Outcome) String() string { return enumName(outcomeNames, o) }

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	*o, _ = parseEnum(outcomeNames, string(b))
	return nil
}

// RunParams is the sole input of a battle.
type RunParams struct {
	Players []ActorInput `yaml:"players" json:"players"`
	Enemies []ActorInput `yaml:"enemies" json:"enemies"`
	// MaxTurns <= 0 means unlimited, bounded by Settings.TurnCeiling.
	MaxTurns int `yaml:"max_turns" json:"maxTurns,omitempty"`
	// Seed absent means a seed is generated and reported in RunResult.Seed.
	Seed rng.Seed `yaml:"seed" json:"seed"`
}

// RunResult is the sole output of a battle.
type RunResult struct {
	Outcome Outcome    `json:"outcome"`
	Turns   int        `json:"turns"`
	Logs    []LogEntry `json:"logs"`
	Players []Actor    `json:"players"`
	Enemies []Actor    `json:"enemies"`
	Seed    uint32     `json:"seed"`
}

// Engine resolves battles. An Engine holds only configuration and may be
// shared by any number of goroutines; every Run owns its own state.
type Engine struct {
	settings Settings
	logger   *zap.Logger
}

// NewEngine creates an Engine with the given settings. A nil logger disables logging.
//
// Precondition: settings.Validate() == nil.
// Postcondition: Returns a non-nil Engine.
func NewEngine(settings Settings, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{settings: settings, logger: logger}
}

// Settings returns the engine's rule constants.
func (e *Engine) Settings() Settings { return e.settings }

// Run resolves one battle with the default settings.
func Run(p RunParams) RunResult {
	return NewEngine(DefaultSettings(), nil).Run(p)
}

// battle is the engine-owned state of a single Run. Players and enemies are
// the arena of cloned actors; resolvers receive pointers into it.
type battle struct {
	settings Settings
	rand     *rng.Recorder
	players  []*Actor
	enemies  []*Actor
	turn     int
	order    int
	logs     []LogEntry
}

// Run resolves the battle described by p.
//
// Precondition: p passed upstream validation (see RunParams.Validate).
// Postcondition: the caller's inputs are unmodified; Outcome is Victory iff
// every enemy's final HP is 0; Seed replays the battle exactly.
func (e *Engine) Run(p RunParams) RunResult {
	b := e.setup(p)
	e.logger.Debug("battle started",
		zap.Uint32("seed", b.rand.Seed()),
		zap.Int("players", len(b.players)),
		zap.Int("enemies", len(b.enemies)),
		zap.Int("max_turns", p.MaxTurns),
	)

	limit := p.MaxTurns
	if limit <= 0 {
		limit = e.settings.TurnCeiling
	}
	for b.turn <= limit && anyAlive(b.enemies) && anyAlive(b.players) {
		b.playerPhase()
		b.petPhase()
		b.enemyPhase()
		b.upkeep()
		b.turn++
	}

	res := RunResult{
		Outcome: Defeat,
		Turns:   b.turn - 1,
		Logs:    b.logs,
		Players: snapshots(b.players),
		Enemies: snapshots(b.enemies),
		Seed:    b.rand.Seed(),
	}
	if !anyAlive(b.enemies) {
		res.Outcome = Victory
	}
	e.logger.Debug("battle resolved",
		zap.Uint32("seed", res.Seed),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("turns", res.Turns),
		zap.Int("log_entries", len(res.Logs)),
	)
	return res
}

func (e *Engine) setup(p RunParams) *battle {
	b := &battle{
		settings: e.settings,
		rand:     rng.NewRecorder(rng.New(p.Seed)),
		turn:     1,
		order:    1,
	}
	for _, in := range p.Players {
		b.players = append(b.players, NewActor(in))
	}
	for _, in := range p.Enemies {
		b.enemies = append(b.enemies, NewActor(in))
	}
	return b
}

func (b *battle) ctx() ResolveContext {
	return ResolveContext{Rand: b.rand, Turn: b.turn, ActionOrderStart: b.order, Settings: b.settings}
}

func (b *battle) record(logs []LogEntry, next int) {
	b.logs = append(b.logs, logs...)
	b.order = next
}

func (b *battle) attack(attacker, defender *Actor) {
	out := ResolveAttack(attacker, defender, b.ctx())
	b.record(out.Logs, out.ActionOrderEnd)
}

// playerPhase lets each living player cast its first eligible skill or, failing
// that, attack a random living enemy.
func (b *battle) playerPhase() {
	for _, p := range b.players {
		if !p.Alive() {
			continue
		}
		if !anyAlive(b.enemies) {
			return
		}
		if s, ok := b.firstEligibleSkill(p); ok {
			targets := b.skillTargets(p, s)
			out := ResolveSkill(p, s, targets, b.ctx())
			b.record(out.Logs, out.ActionOrderEnd)
			p.Cooldowns[s.ID] = s.Cooldown
			continue
		}
		b.attack(p, pickRandom(livingActors(b.enemies), b.rand))
	}
}

// firstEligibleSkill returns the first active skill in list order that is
// affordable, off cooldown, and whose conditions all hold.
func (b *battle) firstEligibleSkill(p *Actor) (Skill, bool) {
	state := b.conditionState(p)
	for _, s := range p.Skills {
		if s.Type != SkillActive {
			continue
		}
		if p.CurrentMana < s.ManaCost || p.Cooldowns[s.ID] > 0 {
			continue
		}
		if !condition.AllHold(s.Conditions, state) {
			continue
		}
		return s, true
	}
	return Skill{}, false
}

func (b *battle) conditionState(p *Actor) condition.State {
	vitals := make([]condition.Vital, len(b.enemies))
	for i, en := range b.enemies {
		vitals[i] = condition.Vital{HP: en.CurrentHP, MaxHP: en.Stats.MaxHP}
	}
	return condition.State{
		PlayerHP:      p.CurrentHP,
		PlayerMaxHP:   p.Stats.MaxHP,
		PlayerMana:    p.CurrentMana,
		PlayerMaxMana: p.Stats.MaxMana,
		Enemies:       vitals,
		Turn:          b.turn,
	}
}

// skillTargets resolves s.TargetType. TargetEnemy and unknown target types
// select one random living enemy with a single draw.
func (b *battle) skillTargets(caster *Actor, s Skill) []*Actor {
	switch s.TargetType {
	case TargetSelf:
		return []*Actor{caster}
	case TargetAlly:
		if t := lowestHPPercent(b.players); t != nil {
			return []*Actor{t}
		}
		return nil
	case TargetAllAllies:
		return livingActors(b.players)
	case TargetAllEnemies:
		return livingActors(b.enemies)
	default:
		if t := pickRandom(livingActors(b.enemies), b.rand); t != nil {
			return []*Actor{t}
		}
		return nil
	}
}

// petPhase lets each living player's pet use its first ready ability, then
// charges its cooldown and mana.
func (b *battle) petPhase() {
	for _, p := range b.players {
		if !p.Alive() || p.Pet == nil || len(p.Pet.Abilities) == 0 {
			continue
		}
		if !anyAlive(b.enemies) {
			return
		}
		pet := p.Pet
		ab, ok := pet.firstReady()
		if !ok {
			continue
		}
		out := ResolvePetAbility(pet, ab, p, PetTargets{Allies: b.players, Enemies: b.enemies}, b.ctx())
		b.record(out.Logs, out.ActionOrderEnd)
		pet.Cooldowns[ab.ID] = ab.Cooldown
		pet.Mana = max(0, pet.Mana-ab.ManaCost)
	}
}

// enemyPhase lets each living enemy attack a random living player.
func (b *battle) enemyPhase() {
	for _, en := range b.enemies {
		if !en.Alive() {
			continue
		}
		if !anyAlive(b.players) {
			return
		}
		b.attack(en, pickRandom(livingActors(b.players), b.rand))
	}
}

// upkeep ticks cooldowns and regenerates floor(maxMana·ManaRegenRate) mana
// for every player.
func (b *battle) upkeep() {
	for _, p := range b.players {
		p.TickCooldowns()
		p.RegenMana(FloorInt(float64(p.Stats.MaxMana) * b.settings.ManaRegenRate))
	}
}

func snapshots(actors []*Actor) []Actor {
	out := make([]Actor, len(actors))
	for i, a := range actors {
		out[i] = a.snapshot()
	}
	return out
}
