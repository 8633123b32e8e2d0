// Package content loads battle rosters from YAML and turns them into engine input.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/rng"
)

// idNamespace scopes the deterministic IDs generated for combatants without one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://skirmish/combatant"))

// Combatant is one participant as written in a roster file. Exactly one of
// Stats or Core must be set: Stats is used verbatim, Core is run through
// character.Derive.
type Combatant struct {
	ID          string              `yaml:"id"`
	Name        string              `yaml:"name"`
	Stats       *combat.CombatStats `yaml:"stats"`
	Core        *character.Core     `yaml:"core"`
	CurrentHP   *int                `yaml:"current_hp"`
	CurrentMana *int                `yaml:"current_mana"`
	Skills      []combat.Skill      `yaml:"skills"`
	SkillIDs    []string            `yaml:"skill_ids"` // references into Roster.Library
	Cooldowns   map[string]int      `yaml:"cooldowns"`
	Pet         *combat.Pet         `yaml:"pet"`
}

// Roster is a complete battle definition.
type Roster struct {
	Name     string         `yaml:"name"`
	Seed     rng.Seed       `yaml:"seed"`
	MaxTurns int            `yaml:"max_turns"`
	Library  []combat.Skill `yaml:"library"`
	Players  []Combatant    `yaml:"players"`
	Enemies  []Combatant    `yaml:"enemies"`
}

// Validate checks the roster's structural invariants.
//
// Precondition: r must not be nil.
// Postcondition: Returns nil if r can be converted by Params, or an error
// describing all violations.
func (r *Roster) Validate() error {
	var errs []string
	lib := make(map[string]bool, len(r.Library))
	for i, s := range r.Library {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("library[%d]: id must not be empty", i))
			continue
		}
		if lib[s.ID] {
			errs = append(errs, fmt.Sprintf("library[%d]: duplicate skill id %q", i, s.ID))
		}
		lib[s.ID] = true
	}
	if r.MaxTurns < 0 {
		errs = append(errs, fmt.Sprintf("max_turns must be >= 0, got %d", r.MaxTurns))
	}
	check := func(side string, cs []Combatant) {
		for i, c := range cs {
			where := fmt.Sprintf("%s[%d]", side, i)
			if c.Name == "" {
				errs = append(errs, where+": name must not be empty")
			}
			if (c.Stats == nil) == (c.Core == nil) {
				errs = append(errs, where+": exactly one of stats or core must be set")
			}
			if c.Core != nil {
				if err := character.ValidateCore(*c.Core); err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", where, err))
				}
			}
			for _, id := range c.SkillIDs {
				if !lib[id] {
					errs = append(errs, fmt.Sprintf("%s: unknown skill id %q", where, id))
				}
			}
		}
	}
	check("players", r.Players)
	check("enemies", r.Enemies)
	if len(r.Players) == 0 {
		errs = append(errs, "players must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("roster %q: %s", r.Name, strings.Join(errs, "; "))
	}
	return nil
}

// Params converts the roster into engine input. Combatants without an ID get
// a name-based UUID that is stable across loads.
//
// Precondition: r.Validate() == nil.
// Postcondition: Returns RunParams that pass RunParams.Validate, or an error.
func (r *Roster) Params(k character.Constants) (combat.RunParams, error) {
	lib := make(map[string]combat.Skill, len(r.Library))
	for _, s := range r.Library {
		lib[s.ID] = s
	}
	p := combat.RunParams{Seed: r.Seed, MaxTurns: r.MaxTurns}
	for i, c := range r.Players {
		p.Players = append(p.Players, c.input("players", i, true, lib, k))
	}
	for i, c := range r.Enemies {
		p.Enemies = append(p.Enemies, c.input("enemies", i, false, lib, k))
	}
	if err := p.Validate(); err != nil {
		return combat.RunParams{}, fmt.Errorf("roster %q: %w", r.Name, err)
	}
	return p, nil
}

func (c Combatant) input(side string, index int, isPlayer bool, lib map[string]combat.Skill, k character.Constants) combat.ActorInput {
	in := combat.ActorInput{
		ID:          c.ID,
		Name:        c.Name,
		IsPlayer:    isPlayer,
		CurrentHP:   c.CurrentHP,
		CurrentMana: c.CurrentMana,
		Skills:      append([]combat.Skill(nil), c.Skills...),
		Cooldowns:   c.Cooldowns,
		Pet:         c.Pet,
	}
	if in.ID == "" {
		in.ID = uuid.NewSHA1(idNamespace, fmt.Appendf(nil, "%s/%d/%s", side, index, c.Name)).String()
	}
	if c.Stats != nil {
		in.Stats = *c.Stats
	} else {
		in.Stats = character.Derive(*c.Core, k)
	}
	for _, id := range c.SkillIDs {
		in.Skills = append(in.Skills, lib[id])
	}
	return in
}

// LoadRosterFromBytes parses a single roster from raw YAML bytes. Unknown keys
// are rejected.
//
// Postcondition: Returns a validated *Roster, or an error.
func LoadRosterFromBytes(data []byte) (*Roster, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var r Roster
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRoster reads and parses the roster file at path. A roster without a
// name is named after its file.
//
// Postcondition: Returns a validated *Roster, or an error.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	r, err := LoadRosterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return r, nil
}

// ErrNoRosters is returned by LoadRosters when dir holds no roster files.
var ErrNoRosters = errors.New("no roster files found")

// LoadRosters reads all *.yaml files in dir.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all rosters in file-name order or an error on the
// first failure; on error, the partial result is discarded.
func LoadRosters(dir string) ([]*Roster, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster dir %q: %w", dir, err)
	}
	var rosters []*Roster
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		r, err := LoadRoster(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, r)
	}
	if len(rosters) == 0 {
		return nil, fmt.Errorf("%q: %w", dir, ErrNoRosters)
	}
	return rosters, nil
}
