package creature

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/foundmagic/internal/game/dice"
	"github.com/cory-johannsen/foundmagic/internal/game/magic"
)

// Flag marks special monster archetypes.
type Flag string

const (
	// Unique monsters spawn at most once per session and are named without an article.
	Unique Flag = "unique"
	// FinalBoss monsters start the endgame when killed.
	FinalBoss Flag = "final_boss"
)

// MonsterType is a monster archetype loaded from YAML.
type MonsterType struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Glyph        string       `yaml:"glyph"`
	Elements     []magic.Kind `yaml:"elements"`
	Vision       int          `yaml:"vision"`
	Speed        float64      `yaml:"speed"`
	Strength     int          `yaml:"strength"`
	MaxHitpoints int          `yaml:"max_hitpoints"`
	MaxMana      int          `yaml:"max_mana"`
	Difficulty   int          `yaml:"difficulty"`
	Flags        []Flag       `yaml:"flags"`

	numberSpawned int
}

// Validate checks that the type satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Glyph is a single
// rune, Vision >= 1, Speed > 0, Strength >= 0, MaxHitpoints >= 1,
// MaxMana >= 0, Difficulty >= 1 and every flag is known.
func (t *MonsterType) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("monster type: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("monster type %q: name must not be empty", t.ID)
	}
	if len([]rune(t.Glyph)) != 1 {
		return fmt.Errorf("monster type %q: glyph must be a single character, got %q", t.ID, t.Glyph)
	}
	if t.Vision < 1 {
		return fmt.Errorf("monster type %q: vision must be >= 1", t.ID)
	}
	if t.Speed <= 0 || math.IsInf(t.Speed, 0) || math.IsNaN(t.Speed) {
		return fmt.Errorf("monster type %q: speed must be a positive number", t.ID)
	}
	if t.Strength < 0 {
		return fmt.Errorf("monster type %q: strength must be >= 0", t.ID)
	}
	if t.MaxHitpoints < 1 {
		return fmt.Errorf("monster type %q: max_hitpoints must be >= 1", t.ID)
	}
	if t.MaxMana < 0 {
		return fmt.Errorf("monster type %q: max_mana must be >= 0", t.ID)
	}
	if t.Difficulty < 1 {
		return fmt.Errorf("monster type %q: difficulty must be >= 1", t.ID)
	}
	for _, f := range t.Flags {
		if f != Unique && f != FinalBoss {
			return fmt.Errorf("monster type %q: unknown flag %q", t.ID, f)
		}
	}
	return nil
}

// HasFlag reports whether the type carries f.
func (t *MonsterType) HasFlag(f Flag) bool {
	for _, have := range t.Flags {
		if have == f {
			return true
		}
	}
	return false
}

// NumberSpawned returns how many monsters of this type have been created.
func (t *MonsterType) NumberSpawned() int { return t.numberSpawned }

// LoadMonsterTypeFromBytes parses a single monster type from raw YAML bytes.
//
// Postcondition: Returns a validated *MonsterType, or an error.
func LoadMonsterTypeFromBytes(data []byte) (*MonsterType, error) {
	var t MonsterType
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing monster type YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Catalog is the read-only set of monster archetypes plus per-session spawn
// counts.
type Catalog struct {
	types []*MonsterType
}

// NewCatalog builds a catalog from already-validated types.
//
// Postcondition: Returns an error if two types share an ID.
func NewCatalog(types ...*MonsterType) (*Catalog, error) {
	seen := make(map[string]bool, len(types))
	c := &Catalog{types: make([]*MonsterType, 0, len(types))}
	for _, t := range types {
		if t == nil {
			return nil, fmt.Errorf("monster catalog: nil monster type")
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("monster catalog: duplicate id %q", t.ID)
		}
		seen[t.ID] = true
		c.types = append(c.types, t)
	}
	return c, nil
}

// LoadCatalog reads all *.yaml files in dir, in name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the catalog or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var types []*MonsterType
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		t, err := LoadMonsterTypeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		types = append(types, t)
	}
	return NewCatalog(types...)
}

// Fresh returns a copy of the catalog with every spawn count reset, for use
// by a new session.
func (c *Catalog) Fresh() *Catalog {
	out := &Catalog{types: make([]*MonsterType, len(c.types))}
	for i, t := range c.types {
		cp := *t
		cp.numberSpawned = 0
		out.types[i] = &cp
	}
	return out
}

// All returns every type in load order.
func (c *Catalog) All() []*MonsterType {
	out := make([]*MonsterType, len(c.types))
	copy(out, c.types)
	return out
}

// Len returns the number of types.
func (c *Catalog) Len() int { return len(c.types) }

// Spawnable returns the types that may still spawn: uniques only until their
// first spawn, and final bosses only once and only on the final floor.
func (c *Catalog) Spawnable(finalFloor bool) []*MonsterType {
	var out []*MonsterType
	for _, t := range c.types {
		if t.HasFlag(Unique) && t.numberSpawned > 0 {
			continue
		}
		if t.HasFlag(FinalBoss) && (!finalFloor || t.numberSpawned > 0) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// PendingBoss returns a final boss type that has not spawned yet.
func (c *Catalog) PendingBoss() (*MonsterType, bool) {
	for _, t := range c.types {
		if t.HasFlag(FinalBoss) && t.numberSpawned == 0 {
			return t, true
		}
	}
	return nil, false
}

// Pick chooses a spawnable type weighted toward low difficulty and toward the
// floor difficulty: weight = (maxDifficulty / d) / (max(d, fd) / min(d, fd)).
//
// Postcondition: Returns (nil, false) when nothing can spawn.
func (c *Catalog) Pick(src dice.Source, floorDifficulty int, finalFloor bool) (*MonsterType, bool) {
	candidates := c.Spawnable(finalFloor)
	if len(candidates) == 0 {
		return nil, false
	}
	maxDifficulty := 0
	for _, t := range c.types {
		maxDifficulty = max(maxDifficulty, t.Difficulty)
	}
	fd := float64(max(floorDifficulty, 1))
	return dice.PickWeighted(src, candidates, func(t *MonsterType) float64 {
		d := float64(t.Difficulty)
		ratio := math.Max(d, fd) / math.Min(d, fd)
		return float64(maxDifficulty) / d / ratio
	})
}
